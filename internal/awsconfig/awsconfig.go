// Package awsconfig parses SSO profiles out of the shared AWS config
// file (~/.aws/config by default).
package awsconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/tamagokakedon/aws-profile-switch/internal/sso"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/ini.v1"
)

const (
	profilePrefix = "profile "
	sessionPrefix = "sso-session "
)

// profileSection mirrors the SSO-related keys of one [profile ...]
// section. Keys not listed here are ignored.
type profileSection struct {
	SSOStartURL      string `mapstructure:"sso_start_url"`
	SSOAccountID     string `mapstructure:"sso_account_id"`
	SSORoleName      string `mapstructure:"sso_role_name"`
	SSOSession       string `mapstructure:"sso_session"`
	SSOAccountName   string `mapstructure:"sso_account_name"`
	AccountName      string `mapstructure:"account_name"`
	SSOAutoPopulated string `mapstructure:"sso_auto_populated"`
	SSORegion        string `mapstructure:"sso_region"`
	Region           string `mapstructure:"region"`
}

// sessionSection mirrors an [sso-session ...] section, the AWS CLI v2
// layout where profiles reference a shared start URL by name.
type sessionSection struct {
	SSOStartURL string `mapstructure:"sso_start_url"`
	SSORegion   string `mapstructure:"sso_region"`
}

// Loader reads SSO profiles from one shared config file.
type Loader struct {
	path   string
	logger *zap.Logger
}

// New builds a Loader for the config file at path.
func New(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, logger: logger}
}

// ResolvePath picks the config file location: the explicit path when
// set, then the AWS_CONFIG_FILE environment variable, then the SDK
// default under the user's home directory.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("AWS_CONFIG_FILE"); env != "" {
		return env
	}
	return config.DefaultSharedConfigFilename()
}

// Load parses the config file and returns every valid SSO profile in
// file order. Sections that are not SSO profiles and SSO sections with
// missing required values are skipped with a debug log; only an
// unreadable file fails the load.
func (l *Loader) Load() ([]sso.Profile, error) {
	file, err := ini.Load(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading aws config %s: %w", l.path, err)
	}

	sessions := make(map[string]sessionSection)
	for _, section := range file.Sections() {
		name, ok := strings.CutPrefix(section.Name(), sessionPrefix)
		if !ok {
			continue
		}

		var sess sessionSection
		if err := decode(section.KeysHash(), &sess); err != nil {
			l.logger.Debug("skipping sso-session section", zap.String("session", name), zap.Error(err))
			continue
		}
		sessions[name] = sess
	}

	var profiles []sso.Profile
	for _, section := range file.Sections() {
		name, ok := strings.CutPrefix(section.Name(), profilePrefix)
		if !ok {
			continue
		}

		var sec profileSection
		if err := decode(section.KeysHash(), &sec); err != nil {
			l.logger.Debug("skipping malformed profile section", zap.String("profile", name), zap.Error(err))
			continue
		}

		startURL := sec.SSOStartURL
		if startURL == "" && sec.SSOSession != "" {
			startURL = sessions[sec.SSOSession].SSOStartURL
		}

		if !isSSO(sec, startURL) {
			continue
		}

		profile := sso.Profile{
			Name:        name,
			AccountName: accountName(sec),
			AccountID:   sec.SSOAccountID,
			RoleName:    sec.SSORoleName,
			StartURL:    startURL,
			Region:      region(sec, sessions),
		}
		if err := profile.Validate(); err != nil {
			l.logger.Debug("skipping incomplete sso profile", zap.String("profile", name), zap.Error(err))
			continue
		}

		profiles = append(profiles, profile)
	}

	l.logger.Debug("parsed aws config",
		zap.String("path", l.path),
		zap.Int("sso_profiles", len(profiles)),
	)

	return profiles, nil
}

// isSSO reports whether a section represents an SSO profile: flagged by
// the CLI as auto-populated, or carrying the full start URL, account id
// and role name triple. The start URL may come from an sso-session
// section.
func isSSO(sec profileSection, startURL string) bool {
	if strings.EqualFold(sec.SSOAutoPopulated, "true") {
		return true
	}
	return startURL != "" && sec.SSOAccountID != "" && sec.SSORoleName != ""
}

// region picks the profile's region: the profile's own region key,
// then its sso_region, then the sso_region of the session it
// references.
func region(sec profileSection, sessions map[string]sessionSection) string {
	switch {
	case sec.Region != "":
		return sec.Region
	case sec.SSORegion != "":
		return sec.SSORegion
	case sec.SSOSession != "":
		return sessions[sec.SSOSession].SSORegion
	}
	return ""
}

// accountName picks the display label: sso_account_name, then
// account_name, then a placeholder derived from the account id.
func accountName(sec profileSection) string {
	switch {
	case sec.SSOAccountName != "":
		return sec.SSOAccountName
	case sec.AccountName != "":
		return sec.AccountName
	case sec.SSOAccountID != "":
		return "Account-" + sec.SSOAccountID
	}
	return ""
}

func decode(raw map[string]string, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
