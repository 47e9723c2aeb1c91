// Package sso holds the profile records parsed from the shared AWS
// config and the read-only catalog the resolution flow searches over.
package sso

import (
	"errors"
	"fmt"
)

// Profile is a single SSO entry from the shared AWS config: one account
// and role pair reachable through a start URL. Values are immutable once
// parsed.
type Profile struct {
	Name        string
	AccountName string
	AccountID   string
	RoleName    string
	StartURL    string
	Region      string
}

// Validate reports the first missing required field. Region is the only
// optional field.
func (p Profile) Validate() error {
	switch {
	case p.Name == "":
		return errors.New("profile name is required")
	case p.AccountName == "":
		return fmt.Errorf("profile %s: account name is required", p.Name)
	case p.AccountID == "":
		return fmt.Errorf("profile %s: account id is required", p.Name)
	case p.RoleName == "":
		return fmt.Errorf("profile %s: role name is required", p.Name)
	case p.StartURL == "":
		return fmt.Errorf("profile %s: start url is required", p.Name)
	}

	return nil
}

// DisplayName labels the account and role together, the way profiles are
// presented to the user.
func (p Profile) DisplayName() string {
	return p.AccountName + " - " + p.RoleName
}
