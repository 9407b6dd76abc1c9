package cgpcli

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/pior/cgpcli/protocol"
)

// accountNamePattern is the locally enforced shape of an account address:
// a name of letters, digits, dots, underscores and dashes, optionally
// followed by @domain. Anything else is rejected before a command is sent.
var accountNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(@[A-Za-z0-9][A-Za-z0-9.-]*)?$`)

func validateAccountName(name string) error {
	if !accountNamePattern.MatchString(name) {
		return &protocol.ValidationError{Message: "invalid account name: " + name}
	}
	return nil
}

// CreateAccount creates an account with empty initial settings.
func (s *Session) CreateAccount(account string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}
	_, err := s.Execute(Build(`CREATEACCOUNT "${account}" {}`, map[string]string{"account": account}))
	return err
}

// DeleteAccount removes an account and its mail store.
func (s *Session) DeleteAccount(account string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}
	_, err := s.Execute(Build(`DELETEACCOUNT "${account}"`, map[string]string{"account": account}))
	return err
}

// RenameAccount renames an account, moving its mail store.
func (s *Session) RenameAccount(oldName, newName string) error {
	if err := validateAccountName(oldName); err != nil {
		return err
	}
	if err := validateAccountName(newName); err != nil {
		return err
	}
	_, err := s.Execute(Build(`RENAMEACCOUNT "${old}" into "${new}"`, map[string]string{
		"old": oldName,
		"new": newName,
	}))
	return err
}

// GetAccountSettings returns the account's settings as raw "key=value"
// fields, in server order. Splitting a field into key and value is the
// caller's job; see SettingValue.
func (s *Session) GetAccountSettings(account string) ([]string, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}
	body, err := s.Execute(Build(`GETACCOUNTSETTINGS "${account}"`, map[string]string{"account": account}))
	if err != nil {
		return nil, err
	}
	return body.Items, nil
}

// UpdateAccountSettings merges the given settings fields into the account.
// Values are protocol text and are passed through verbatim; quote values that
// need quoting before calling.
func (s *Session) UpdateAccountSettings(account string, settings map[string]string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`UPDATEACCOUNTSETTINGS "`)
	b.WriteString(Escape(account))
	b.WriteString(`" {`)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(settings[k])
		b.WriteString(";")
	}
	b.WriteString("}")

	_, err := s.Execute(Raw(b.String()))
	return err
}

// SetAccountPassword sets the account's password.
func (s *Session) SetAccountPassword(account, password string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}
	_, err := s.Execute(Build(`SETACCOUNTPASSWORD "${account}" PASSWORD "${password}"`, map[string]string{
		"account":  account,
		"password": password,
	}))
	return err
}

// VerifyAccountPassword checks a password against an account. A reply with
// the incorrect-password code is the negative answer, not a failure; every
// other error is surfaced.
func (s *Session) VerifyAccountPassword(account, password string) (bool, error) {
	if err := validateAccountName(account); err != nil {
		return false, err
	}
	_, err := s.Execute(Build(`VERIFYACCOUNTPASSWORD "${account}" PASSWORD "${password}"`, map[string]string{
		"account":  account,
		"password": password,
	}))
	if err == nil {
		return true, nil
	}
	var se *protocol.ServerError
	if errors.As(err, &se) && se.Code == protocol.CodeIncorrectPassword {
		return false, nil
	}
	return false, err
}

// SettingValue extracts the value of one settings field from raw "key=value"
// entries. Returns ok=false when the field is absent.
func SettingValue(settings []string, key string) (string, bool) {
	for _, field := range settings {
		k, v, found := strings.Cut(field, "=")
		if found && strings.TrimSpace(k) == key {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// AccountStorageLimit returns the account's storage limit as reported by the
// server. The server reports sizes either with a trailing unit letter or as
// a bare number of kilobytes; a value whose last character is a digit gets
// the kilobyte suffix appended. There is no units metadata on the wire, so
// this heuristic is all there is.
func (s *Session) AccountStorageLimit(account string) (string, error) {
	settings, err := s.GetAccountSettings(account)
	if err != nil {
		return "", err
	}
	limit, ok := SettingValue(settings, "MaxAccountSize")
	if !ok {
		return "", nil
	}
	return normalizeStorageLimit(limit), nil
}

func normalizeStorageLimit(v string) string {
	if v == "" {
		return v
	}
	if last := v[len(v)-1]; last >= '0' && last <= '9' {
		return v + "K"
	}
	return v
}
