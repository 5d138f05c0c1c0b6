package notificationdiscord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSender(t *testing.T) {
	_, err := NewSender("")
	assert.ErrorIs(t, err, ErrNoToken)

	s, err := NewSender("test-token")
	require.NoError(t, err)
	rs, ok := s.(*restSender)
	require.True(t, ok)
	assert.Equal(t, "Bot test-token", rs.session.Token)
	assert.NoError(t, s.Close())
}
