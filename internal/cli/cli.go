// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osokin/gather/internal/collector"
	"github.com/osokin/gather/internal/config"
	"github.com/osokin/gather/internal/document"
	"github.com/osokin/gather/internal/selection"
	"github.com/osokin/gather/internal/services/clipboard"
	"github.com/osokin/gather/internal/tokenizer"
	"github.com/osokin/gather/internal/tree"
	"github.com/osokin/gather/internal/types"
	"github.com/osokin/gather/internal/utils"
)

const (
	exclusionFlagName    = "e"
	outputFlagName       = "output"
	copyFlagName         = "copy"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	configFlagName       = "config"
	versionFlagName      = "version"
	forceFlagName        = "force"
	globalFlagName       = "global"
	versionTemplate      = "gather version: %s\n"
	defaultPath          = "."
	rootUse              = "gather"
	rootShortDescription = "gather project files into one document"
	rootLongDescription  = `gather walks the current directory, selects source and configuration files,
and writes a single text document containing the directory structure and the
content of every selected file. Sensitive files and dependency directories are
excluded by the built-in rules; gather.yaml can extend them.`
	// rootUsageExample demonstrates typical invocations.
	rootUsageExample = `  # Gather the current project into gathered_code.txt
  gather

  # Exclude an extra directory and copy the result to the clipboard
  gather -e vendor --copy

  # Include a token count for the generated document
  gather --tokens --model gpt-4o`

	treeUse              = "tree [path]"
	treeAlias            = "t"
	treeShortDescription = "display the directory tree (" + treeAlias + ")"
	treeLongDescription  = `Render the directory structure that a gather run would document, without
reading any file content. The listing honors the same ignore rules.`

	initUse              = "init"
	initShortDescription = "write a default gather.yaml"
	initLongDescription  = `Create a configuration file with the default selection rules spelled out.
Use --global to write it under the home directory instead of the working
directory, and --force to overwrite an existing file.`

	versionFlagDescription   = "display application version"
	exclusionFlagDescription = "additional ignore pattern"
	outputFlagDescription    = "output file name"
	copyFlagDescription      = "copy the generated document to the clipboard"
	tokensFlagDescription    = "include a token count for the generated document"
	modelFlagDescription     = "tokenizer model to use for token counting"
	configFlagDescription    = "configuration file path"
	forceFlagDescription     = "overwrite an existing configuration file"
	globalFlagDescription    = "write the global configuration file"

	defaultTokenizerModelName = "gpt-4o"

	confirmationMessageFormat       = "Documentation written to %s\n"
	tokenCountMessageFormat         = "Token count: %d (%s)\n"
	clipboardConfirmationMessage    = "Document copied to clipboard\n"
	initConfirmationMessageFormat   = "Configuration written to %s\n"
	warningLineFormat               = "Warning: %s: %s\n"
	clipboardErrorFormat            = "copying document to clipboard: %w"
	tokenizerErrorFormat            = "counting document tokens: %w"
	errorPathMissingFormat          = "path '%s' does not exist"
	errorPathNotDirectoryFormat     = "path '%s' is not a directory"
	errorStatFormat                 = "stat failed for '%s': %w"
	configurationLoadingErrorFormat = "loading configuration: %w"
)

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
)

// Execute runs the gather application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// runOptions stores configuration collected from command line flags.
type runOptions struct {
	exclusionPatterns  []string
	outputFileName     string
	copyToClipboard    bool
	countTokens        bool
	tokenizerModel     string
	modelExplicitlySet bool
	configFilePath     string
}

// addRunFlags registers pipeline flags on the command.
func addRunFlags(command *cobra.Command, options *runOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	command.Flags().StringVar(&options.outputFileName, outputFlagName, "", outputFlagDescription)
	command.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	command.Flags().BoolVar(&options.countTokens, tokensFlagName, false, tokensFlagDescription)
	command.Flags().StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	command.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options runOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			options.modelExplicitlySet = command.Flags().Changed(modelFlagName)
			return runGather(rootPath, options, command.OutOrStdout(), command.ErrOrStderr())
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	addRunFlags(rootCommand, &options)
	rootCommand.AddCommand(
		createTreeCommand(),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand() *cobra.Command {
	var exclusionPatterns []string
	var configFilePath string

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			return runTree(rootPath, exclusionPatterns, configFilePath, command.OutOrStdout(), command.ErrOrStderr())
		},
	}
	treeCommand.Flags().StringArrayVarP(&exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	treeCommand.Flags().StringVar(&configFilePath, configFlagName, "", configFlagDescription)
	return treeCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initializationError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initializationError != nil {
				return initializationError
			}
			successColor.Fprintf(command.OutOrStdout(), initConfirmationMessageFormat, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runGather executes the full pipeline: collect eligible files, render the
// tree, assemble the document, and write it once to the output file.
func runGather(rootPath string, options runOptions, stdout io.Writer, stderr io.Writer) error {
	absoluteRootPath, validationError := resolveRootDirectory(rootPath)
	if validationError != nil {
		return validationError
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: absoluteRootPath,
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return fmt.Errorf(configurationLoadingErrorFormat, configurationError)
	}

	selectionRules := config.EffectiveSelectionRules(applicationConfiguration, options.exclusionPatterns)
	pathSelector := selection.NewSelector(selectionRules)

	fileCollection, collectionWarnings, collectionError := collector.NewCollector(pathSelector).Collect(absoluteRootPath)
	if collectionError != nil {
		return collectionError
	}

	treeLines, treeWarnings := tree.NewRenderer(pathSelector).RenderLines(absoluteRootPath)

	projectName := filepath.Base(absoluteRootPath)
	documentText := document.Build(projectName, treeLines, fileCollection)

	outputFileName := resolveOutputFileName(options.outputFileName, applicationConfiguration.Output)
	outputFilePath := filepath.Join(absoluteRootPath, outputFileName)
	if writeError := document.Write(outputFilePath, documentText); writeError != nil {
		return writeError
	}

	if options.copyToClipboard {
		if copyError := clipboard.NewService().Copy(documentText); copyError != nil {
			return fmt.Errorf(clipboardErrorFormat, copyError)
		}
		successColor.Fprint(stdout, clipboardConfirmationMessage)
	}

	successColor.Fprintf(stdout, confirmationMessageFormat, outputFileName)

	if tokenCountingEnabled(options, applicationConfiguration) {
		tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{
			Model: resolveTokenizerModel(options, applicationConfiguration),
		})
		if counterError != nil {
			return fmt.Errorf(tokenizerErrorFormat, counterError)
		}
		tokenCount, countError := tokenCounter.CountString(documentText)
		if countError != nil {
			return fmt.Errorf(tokenizerErrorFormat, countError)
		}
		fmt.Fprintf(stdout, tokenCountMessageFormat, tokenCount, resolvedModel)
	}

	reportWarnings(stderr, append(collectionWarnings, treeWarnings...))
	return nil
}

// runTree renders only the directory structure to stdout.
func runTree(rootPath string, exclusionPatterns []string, configFilePath string, stdout io.Writer, stderr io.Writer) error {
	absoluteRootPath, validationError := resolveRootDirectory(rootPath)
	if validationError != nil {
		return validationError
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: absoluteRootPath,
		ExplicitFilePath: configFilePath,
	})
	if configurationError != nil {
		return fmt.Errorf(configurationLoadingErrorFormat, configurationError)
	}

	selectionRules := config.EffectiveSelectionRules(applicationConfiguration, exclusionPatterns)
	pathSelector := selection.NewSelector(selectionRules)

	treeLines, treeWarnings := tree.NewRenderer(pathSelector).RenderLines(absoluteRootPath)
	for _, treeLine := range treeLines {
		fmt.Fprintln(stdout, treeLine)
	}

	reportWarnings(stderr, treeWarnings)
	return nil
}

// resolveRootDirectory converts the input path to absolute form and verifies
// that it names an existing directory.
func resolveRootDirectory(rootPath string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return "", fmt.Errorf("abs failed for '%s': %w", rootPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	fileInformation, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return "", fmt.Errorf(errorPathMissingFormat, rootPath)
		}
		return "", fmt.Errorf(errorStatFormat, rootPath, fileStatusError)
	}
	if !fileInformation.IsDir() {
		return "", fmt.Errorf(errorPathNotDirectoryFormat, rootPath)
	}
	return cleanPath, nil
}

// resolveOutputFileName picks the output name: flag, then configuration, then default.
func resolveOutputFileName(flagValue string, configuredValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if configuredValue != "" {
		return configuredValue
	}
	return utils.DefaultOutputFileName
}

func tokenCountingEnabled(options runOptions, configuration config.ApplicationConfiguration) bool {
	if options.countTokens {
		return true
	}
	return configuration.Tokens.Enabled != nil && *configuration.Tokens.Enabled
}

// resolveTokenizerModel picks the tokenizer model: an explicitly passed flag
// wins over the configuration file, which wins over the flag default.
func resolveTokenizerModel(options runOptions, configuration config.ApplicationConfiguration) string {
	if options.modelExplicitlySet && options.tokenizerModel != "" {
		return options.tokenizerModel
	}
	if configuration.Tokens.Model != "" {
		return configuration.Tokens.Model
	}
	return options.tokenizerModel
}

// reportWarnings echoes collected diagnostics to stderr after the run.
func reportWarnings(stderr io.Writer, warnings []types.Warning) {
	for _, warningEntry := range warnings {
		warningColor.Fprintf(stderr, warningLineFormat, warningEntry.Path, warningEntry.Message)
	}
}
