package cmd

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/tamagokakedon/aws-profile-switch/internal/logger"
	"github.com/tamagokakedon/aws-profile-switch/internal/search"
	"github.com/tamagokakedon/aws-profile-switch/internal/sso"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List SSO profiles, optionally ranked against a fuzzy query",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		listProfiles(query)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listProfiles(query string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	catalog := loadCatalog(config, logger)

	profiles := catalog.Profiles()
	if query != "" {
		profiles = rankProfiles(profiles, query)
		if len(profiles) == 0 {
			logger.Info("exiting", zap.String("reason", "no profiles matched the query"), zap.String("query", query))
			return
		}
	}

	printProfiles(profiles)
}

// rankProfiles orders profiles by how well "account role profile"
// matches the query. Profiles sharing all three fields collapse into
// one key; the last one wins.
func rankProfiles(profiles []sso.Profile, query string) []sso.Profile {
	keys := make([]string, 0, len(profiles))
	byKey := make(map[string]sso.Profile, len(profiles))

	for _, p := range profiles {
		key := p.AccountName + " " + p.RoleName + " " + p.Name
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = p
	}

	ranked := search.NewMatcher(nil).Rank(query, keys, 0)

	out := make([]sso.Profile, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, byKey[c.Text])
	}

	return out
}

func printProfiles(profiles []sso.Profile) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tACCOUNT\tACCOUNT ID\tROLE")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.AccountName, p.AccountID, p.RoleName)
	}
	w.Flush()
}
