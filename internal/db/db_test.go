package db

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "mongodb://localhost:27017/cards", want: "cards"},
		{raw: "mongodb://user:pw@db:27017/shop?authSource=admin", want: "shop"},
		{raw: "mongodb://localhost:27017", want: "catalog"},
		{raw: "mongodb://localhost:27017/", want: "catalog"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, DatabaseName(u), tt.raw)
	}
}

func TestConnectToDBBadURI(t *testing.T) {
	_, err := ConnectToDB("://nope")
	assert.Error(t, err)
}
