package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/agegate/internal/activity"
	"github.com/twiced-technology-gmbh/agegate/internal/birthdate"
)

func init() {
	DisableColor()
}

func TestDetect(t *testing.T) {
	t.Setenv("AGEGATE_OUTPUT", "")
	assert.Equal(t, FormatText, Detect(false))
	assert.Equal(t, FormatJSON, Detect(true))

	t.Setenv("AGEGATE_OUTPUT", "json")
	assert.Equal(t, FormatJSON, Detect(false))
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "INVALID_DATE", "This date doesn't exist", map[string]any{"part": "month"})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "INVALID_DATE", resp.Code)
	assert.Equal(t, "month", resp.Details["part"])
}

func TestOutcome(t *testing.T) {
	var buf bytes.Buffer
	Outcome(&buf, birthdate.Outcome{Accepted: true, Message: "1990-01-01", Age: 36})
	assert.Equal(t, "accepted 1990-01-01 (age 36)\n", buf.String())

	buf.Reset()
	Outcome(&buf, birthdate.Outcome{Message: "Sorry, you're not old enough yet."})
	assert.Equal(t, "rejected Sorry, you're not old enough yet.\n", buf.String())
}

func TestInvalid(t *testing.T) {
	var buf bytes.Buffer
	Invalid(&buf, "month", "This date doesn't exist")
	assert.Equal(t, "invalid month This date doesn't exist\n", buf.String())
}

func TestKeyValues(t *testing.T) {
	var buf bytes.Buffer
	KeyValues(&buf, [][2]string{{"field.min_age", "18"}, {"version", "1"}})
	assert.Equal(t, "field.min_age  18\nversion        1\n", buf.String())
}

func TestActivityTable(t *testing.T) {
	var buf bytes.Buffer
	ActivityTable(&buf, nil)
	assert.Contains(t, buf.String(), "No activity recorded.")

	buf.Reset()
	ActivityTable(&buf, []activity.Entry{
		{Timestamp: time.Now(), Session: "0b6f1c2e-aaaa-bbbb", Action: activity.ActionRejected, Detail: "too young"},
	})
	out := buf.String()
	assert.Contains(t, out, "SESSION")
	assert.Contains(t, out, "0b6f1c2e ")
	assert.NotContains(t, out, "aaaa")
	assert.Contains(t, out, "too young")
}
