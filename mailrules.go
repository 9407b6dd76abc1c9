package cgpcli

import (
	"strings"

	"github.com/pior/cgpcli/rules"
)

// Rule templates for the rule types this client edits. The ^0 slot is
// filled with the (escaped) caller-supplied value; everything else is sent
// to the server verbatim.
const (
	redirectMarker   = `"#Redirect"`
	redirectTemplate = `1,"#Redirect",(),(("Mirror to","^0"),(Discard,"---"))`

	vacationMarker   = `"#Vacation"`
	vacationTemplate = `2,"#Vacation",(),(("Reply with","^0"))`
)

// AccountMailRules returns the account's mail-processing rules as opaque
// records, in server evaluation order.
func (s *Session) AccountMailRules(account string) (rules.Set, error) {
	settings, err := s.GetAccountSettings(account)
	if err != nil {
		return nil, err
	}
	// Rejoin the decoded fields so the rule scanner sees the settings body
	// as one blob; the rules field may itself contain separators.
	return rules.Decode(strings.Join(settings, ";")), nil
}

// SetAccountRedirect installs (or replaces) a redirect rule mirroring the
// account's mail to target. Sibling rules and their order are preserved.
func (s *Session) SetAccountRedirect(account, target string) error {
	return s.mergeRule(account, redirectMarker, redirectTemplate, target)
}

// ClearAccountRedirect removes the redirect rule, if any. When no rules
// remain the account reverts to the server defaults.
func (s *Session) ClearAccountRedirect(account string) error {
	return s.mergeRule(account, redirectMarker, redirectTemplate, "")
}

// SetAccountVacation installs (or replaces) a vacation auto-reply rule.
func (s *Session) SetAccountVacation(account, message string) error {
	return s.mergeRule(account, vacationMarker, vacationTemplate, message)
}

// ClearAccountVacation removes the vacation rule, if any.
func (s *Session) ClearAccountVacation(account string) error {
	return s.mergeRule(account, vacationMarker, vacationTemplate, "")
}

func (s *Session) mergeRule(account, marker, template, value string) error {
	existing, err := s.AccountMailRules(account)
	if err != nil {
		return err
	}
	if value != "" {
		value = Escape(value)
	}
	serialized := rules.Merge(existing, marker, template, value)
	return s.UpdateAccountSettings(account, map[string]string{"Rules": serialized})
}
