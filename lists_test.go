package cgpcli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pior/cgpcli/protocol"
)

func TestListLists(t *testing.T) {
	server := startAdminServer(t, map[string]string{
		"LISTLISTS example.com": "200 (announce,support,)",
	})
	session := NewSession(server.Config())
	defer session.Disconnect()

	lists, err := session.ListLists("example.com")
	require.NoError(t, err)
	require.Equal(t, []string{"announce", "support"}, lists)
}

func TestCreateList(t *testing.T) {
	server := startAdminServer(t, nil)
	session := NewSession(server.Config())
	defer session.Disconnect()

	require.NoError(t, session.CreateList("announce@example.com", "postmaster@example.com"))
	require.Equal(t, 1, server.Count(`CREATELIST "announce@example.com" for "postmaster@example.com"`))
}

func TestCreateListRejectsBadOwner(t *testing.T) {
	server := startAdminServer(t, nil)
	session := NewSession(server.Config())
	defer session.Disconnect()

	err := session.CreateList("announce", `post master"`)

	var ve *protocol.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Empty(t, server.Commands())
}

func TestSubscribeUnsubscribe(t *testing.T) {
	server := startAdminServer(t, map[string]string{
		`LISTSUBSCRIBERS "announce"`: "200 (john@example.com,jane@example.com,)",
	})
	session := NewSession(server.Config())
	defer session.Disconnect()

	require.NoError(t, session.Subscribe("announce", "john@example.com"))
	require.Equal(t, 1, server.Count(`SUBSCRIBE "john@example.com" TO "announce"`))

	subscribers, err := session.ListSubscribers("announce")
	require.NoError(t, err)
	require.Equal(t, []string{"john@example.com", "jane@example.com"}, subscribers)

	require.NoError(t, session.Unsubscribe("announce", "john@example.com"))
	require.Equal(t, 1, server.Count(`UNSUBSCRIBE "john@example.com" FROM "announce"`))
}

func TestDeleteList(t *testing.T) {
	server := startAdminServer(t, nil)
	session := NewSession(server.Config())
	defer session.Disconnect()

	require.NoError(t, session.DeleteList("announce"))
	require.Equal(t, 1, server.Count(`DELETELIST "announce"`))
}
