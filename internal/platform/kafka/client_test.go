package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("requires a broker", func(t *testing.T) {
		client, err := NewClient(nil)
		require.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("does not dial on construction", func(t *testing.T) {
		client, err := NewClient([]string{"localhost:1"})
		require.NoError(t, err)
		t.Cleanup(client.Close)
		assert.NotNil(t, client)
	})
}
