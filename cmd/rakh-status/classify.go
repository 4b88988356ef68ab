package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adeilh/go-rakh-status/httpx/statusclass"
)

var (
	strategyName string
	asText       bool
)

// classifyCmd resolves codes given on the command line
var classifyCmd = &cobra.Command{
	Use:   "classify CODE...",
	Short: "Print the status class of each code",
	Long: `Classifies each argument. Arguments that parse as integers go through the
selected strategy; anything else is treated as three-character status text.

Example:
  rakh-status classify 200 404 -1 700
  rakh-status classify --text 2xx 503`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&strategyName, "strategy", "branch", "Classification strategy ("+strings.Join(strategyNames(), ", ")+")")
	classifyCmd.Flags().BoolVar(&asText, "text", false, "Treat every argument as three-character status text")
}

func runClassify(cmd *cobra.Command, args []string) error {
	classify, ok := statusclass.Lookup(strategyName)
	if !ok {
		return fmt.Errorf("unknown strategy %q (want one of %s)", strategyName, strings.Join(strategyNames(), ", "))
	}
	out := cmd.OutOrStdout()
	for _, arg := range args {
		var class statusclass.Class
		code, err := strconv.Atoi(arg)
		switch {
		case asText || err != nil:
			class = statusclass.ClassOfText(arg)
		default:
			class = classify(code)
		}
		logger.Debug("Classified", zap.String("input", arg), zap.String("strategy", strategyName), zap.Stringer("class", class))
		fmt.Fprintf(out, "%s\t%s\n", arg, class.Label())
	}
	return nil
}

func strategyNames() []string {
	var names []string
	for _, s := range statusclass.Strategies() {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}
