package cgpcli

import "github.com/pior/cgpcli/protocol"

// ListDomains returns the names of all domains served by the server.
func (s *Session) ListDomains() ([]string, error) {
	body, err := s.Execute(Raw("LISTDOMAINS"))
	if err != nil {
		return nil, err
	}
	return body.Items, nil
}

// MainDomainName returns the server's main domain name.
func (s *Session) MainDomainName() (string, error) {
	body, err := s.Execute(Raw("MAINDOMAINNAME"))
	if err != nil {
		return "", err
	}
	return scalarOf(body), nil
}

// ListAccounts returns the account names of a domain.
func (s *Session) ListAccounts(domain string) ([]string, error) {
	body, err := s.Execute(Build(`LISTACCOUNTS ${domain}`, map[string]string{"domain": domain}))
	if err != nil {
		return nil, err
	}
	return body.Items, nil
}

// scalarOf flattens a decoded body down to a single value. Some servers wrap
// scalar replies in a one-element list.
func scalarOf(body protocol.Body) string {
	if body.Kind == protocol.Scalar {
		return body.Value
	}
	if len(body.Items) > 0 {
		return body.Items[0]
	}
	return ""
}
