package partition

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/callbill/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usageRow(accountID string, charge string) ingest.Row {
	return ingest.Row{
		AccountID:       accountID,
		AreaPrefix:      "91",
		AreaName:        "Somewhere",
		DurationSeconds: decimal.NewFromInt(60),
		DurationValid:   true,
		Charge:          decimal.RequireFromString(charge),
		ChargeValid:     true,
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"AB-123", "AB-123"},
		{"  AB-123  ", "AB-123"},
		{"AB 123", "AB123"},
		{"a/b\\c:d", "abcd"},
		{"acct_9", "acct_9"},
		{"007", "007"},
		{"###", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Sanitize(tc.in), "Sanitize(%q)", tc.in)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	for _, id := range []string{"AB-123", " x y z ", "a.b.c", "acct_1"} {
		once := Sanitize(id)
		assert.Equal(t, once, Sanitize(once))
	}
}

func TestPartitionFirstSeenOrder(t *testing.T) {
	rows := []ingest.Row{
		usageRow("B", "1.00"),
		usageRow("A", "2.00"),
		usageRow("B", "3.00"),
		usageRow("C", "4.00"),
		usageRow("A", "5.00"),
	}

	groups, err := Partition(rows)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "B", groups[0].AccountID)
	assert.Equal(t, "A", groups[1].AccountID)
	assert.Equal(t, "C", groups[2].AccountID)

	// rows keep source order inside each group
	require.Len(t, groups[0].Rows, 2)
	assert.Equal(t, "1", groups[0].Rows[0].Charge.String())
	assert.Equal(t, "3", groups[0].Rows[1].Charge.String())
}

func TestPartitionStable(t *testing.T) {
	rows := []ingest.Row{
		usageRow("X", "1.00"),
		usageRow("Y", "2.00"),
		usageRow("X", "3.00"),
	}

	first, err := Partition(rows)
	require.NoError(t, err)
	second, err := Partition(rows)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPartitionCollision(t *testing.T) {
	rows := []ingest.Row{
		usageRow("AB.123", "1.00"),
		usageRow("AB/123", "2.00"),
	}

	_, err := Partition(rows)
	require.Error(t, err)

	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "AB123", collision.SanitizedID)
	assert.ElementsMatch(t, []string{"AB.123", "AB/123"}, collision.RawIDs)
}

func TestPartitionSameRawIDNoCollision(t *testing.T) {
	rows := []ingest.Row{
		usageRow("AB.123", "1.00"),
		usageRow("AB.123", "2.00"),
	}

	groups, err := Partition(rows)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "AB123", groups[0].AccountID)
	assert.Equal(t, "AB.123", groups[0].RawID)
	assert.Len(t, groups[0].Rows, 2)
}
