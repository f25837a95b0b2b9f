package listing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("SOLD")
	require.NoError(t, err)
	assert.Equal(t, StatusSold, st)
	assert.Equal(t, "SOLD", st.String())

	_, err = ParseStatus("StatusEnum_SOLD")
	assert.Error(t, err, "unknown status names must be a decode error")

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("RENT")
	require.NoError(t, err)
	assert.Equal(t, KindRent, k)

	_, err = ParseKind("LEASE")
	assert.Error(t, err)
}

func TestListingJSONRoundTrip(t *testing.T) {
	in := `{"listing_id":1,"car_id":1,"user_id":1,"kind":"BUY","description":"Has wheels, nice","sale_price":"25000.00","promoted":false,"status":"AVAILABLE"}`

	var l Listing
	require.NoError(t, json.Unmarshal([]byte(in), &l))
	assert.Equal(t, KindBuy, l.Kind)
	assert.Equal(t, StatusAvailable, l.Status)
	assert.True(t, l.SalePrice.Equal(decimal.RequireFromString("25000.00")))

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"status":"AVAILABLE"`)
	assert.Contains(t, string(out), `"kind":"BUY"`)
}

func TestListingJSONRejectsUnknownStatus(t *testing.T) {
	var l Listing
	err := json.Unmarshal([]byte(`{"status":"GONE"}`), &l)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"kind":"SWAP"}`), &l)
	assert.Error(t, err)
}
