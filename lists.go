package cgpcli

// ListLists returns the mailing list names of a domain.
func (s *Session) ListLists(domain string) ([]string, error) {
	body, err := s.Execute(Build(`LISTLISTS ${domain}`, map[string]string{"domain": domain}))
	if err != nil {
		return nil, err
	}
	return body.Items, nil
}

// CreateList creates a mailing list owned by the given account.
func (s *Session) CreateList(list, owner string) error {
	if err := validateAccountName(owner); err != nil {
		return err
	}
	_, err := s.Execute(Build(`CREATELIST "${list}" for "${owner}"`, map[string]string{
		"list":  list,
		"owner": owner,
	}))
	return err
}

// DeleteList removes a mailing list.
func (s *Session) DeleteList(list string) error {
	_, err := s.Execute(Build(`DELETELIST "${list}"`, map[string]string{"list": list}))
	return err
}

// ListSubscribers returns the subscriber addresses of a mailing list.
func (s *Session) ListSubscribers(list string) ([]string, error) {
	body, err := s.Execute(Build(`LISTSUBSCRIBERS "${list}"`, map[string]string{"list": list}))
	if err != nil {
		return nil, err
	}
	return body.Items, nil
}

// Subscribe adds an address to a mailing list.
func (s *Session) Subscribe(list, address string) error {
	_, err := s.Execute(Build(`SUBSCRIBE "${address}" TO "${list}"`, map[string]string{
		"address": address,
		"list":    list,
	}))
	return err
}

// Unsubscribe removes an address from a mailing list.
func (s *Session) Unsubscribe(list, address string) error {
	_, err := s.Execute(Build(`UNSUBSCRIBE "${address}" FROM "${list}"`, map[string]string{
		"address": address,
		"list":    list,
	}))
	return err
}
