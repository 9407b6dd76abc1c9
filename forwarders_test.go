package cgpcli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForwarders(t *testing.T) {
	server := startAdminServer(t, map[string]string{
		"LISTFORWARDERS example.com": "200 (sales,info,)",
		`GETFORWARDER "sales"`:       "200 (john@example.com)",
	})
	session := NewSession(server.Config())
	defer session.Disconnect()

	require.NoError(t, session.CreateForwarder("sales@example.com", "john@example.com"))
	require.Equal(t, 1, server.Count(`CREATEFORWARDER "sales@example.com" TO "john@example.com"`))

	forwarders, err := session.ListForwarders("example.com")
	require.NoError(t, err)
	require.Equal(t, []string{"sales", "info"}, forwarders)

	// a single-element list collapses to the address itself
	address, err := session.GetForwarder("sales")
	require.NoError(t, err)
	require.Equal(t, "john@example.com", address)

	require.NoError(t, session.DeleteForwarder("sales@example.com"))
	require.Equal(t, 1, server.Count(`DELETEFORWARDER "sales@example.com"`))
}
