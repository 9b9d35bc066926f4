package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSSHServerOneGamePerPlayer(t *testing.T) {
	srv := &SSHServer{}

	assert.True(t, srv.claim("ana", "conn-1"))
	assert.True(t, srv.claim("ana", "conn-1"), "holder can claim again")
	assert.False(t, srv.claim("ana", "conn-2"), "second connection is refused")
	assert.True(t, srv.claim("bob", "conn-2"), "other players are unaffected")

	// A refused connection closing must not free the holder's claim.
	srv.release("ana", "conn-2")
	assert.False(t, srv.claim("ana", "conn-3"))

	srv.release("ana", "conn-1")
	assert.True(t, srv.claim("ana", "conn-3"))
}
