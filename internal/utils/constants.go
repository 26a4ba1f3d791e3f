package utils

// ConfigFileName is the name of the project's configuration file.
const ConfigFileName = "gather.yaml"

// GlobalConfigDirectoryName is the directory under the user's home that holds
// the global configuration file.
const GlobalConfigDirectoryName = ".gather"

// DefaultOutputFileName is the fixed name of the generated document.
const DefaultOutputFileName = "gathered_code.txt"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage reports a fatal application error.
const ApplicationExecutionFailedMessage = "application execution failed"
