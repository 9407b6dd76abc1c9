package cgpcli

// ListForwarders returns the forwarder names of a domain.
func (s *Session) ListForwarders(domain string) ([]string, error) {
	body, err := s.Execute(Build(`LISTFORWARDERS ${domain}`, map[string]string{"domain": domain}))
	if err != nil {
		return nil, err
	}
	return body.Items, nil
}

// GetForwarder returns the address a forwarder points at.
func (s *Session) GetForwarder(forwarder string) (string, error) {
	body, err := s.Execute(Build(`GETFORWARDER "${forwarder}"`, map[string]string{"forwarder": forwarder}))
	if err != nil {
		return "", err
	}
	return scalarOf(body), nil
}

// CreateForwarder creates a forwarder pointing at the given address.
func (s *Session) CreateForwarder(forwarder, address string) error {
	_, err := s.Execute(Build(`CREATEFORWARDER "${forwarder}" TO "${address}"`, map[string]string{
		"forwarder": forwarder,
		"address":   address,
	}))
	return err
}

// DeleteForwarder removes a forwarder.
func (s *Session) DeleteForwarder(forwarder string) error {
	_, err := s.Execute(Build(`DELETEFORWARDER "${forwarder}"`, map[string]string{"forwarder": forwarder}))
	return err
}
