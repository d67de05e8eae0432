package validate_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upwatch/upwatch/internal/domain/check"
	"github.com/upwatch/upwatch/internal/validate"
)

// decode runs a JSON document through encoding/json the same way the HTTP
// layer does, so validators see float64/[]any shapes.
func decode(t *testing.T, doc string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &m))
	return m
}

func TestProtocol(t *testing.T) {
	assert.Equal(t, validate.Field[check.Protocol]{State: validate.Valid, Value: check.ProtocolHTTP}, validate.Protocol("http"))
	assert.True(t, validate.Protocol("https").Ok())
	assert.Equal(t, validate.Invalid, validate.Protocol("ftp").State)
	assert.Equal(t, validate.Invalid, validate.Protocol("HTTP").State)
	assert.Equal(t, validate.Invalid, validate.Protocol(42.0).State)
	assert.Equal(t, validate.Missing, validate.Protocol(nil).State)
}

func TestURL(t *testing.T) {
	f := validate.URL("example.com")
	require.True(t, f.Ok())
	assert.Equal(t, "example.com", f.Value)

	// Deliberately permissive: any non-blank string passes.
	assert.True(t, validate.URL("not a url at all").Ok())

	assert.Equal(t, validate.Invalid, validate.URL("   ").State)
	assert.Equal(t, validate.Invalid, validate.URL("").State)
	assert.Equal(t, validate.Missing, validate.URL(nil).State)
}

func TestMethod(t *testing.T) {
	for _, m := range []string{"GET", "POST", "PUT", "DELETE"} {
		assert.True(t, validate.Method(m).Ok(), m)
	}
	assert.Equal(t, validate.Invalid, validate.Method("get").State)
	assert.Equal(t, validate.Invalid, validate.Method("PATCH").State)
	assert.Equal(t, validate.Missing, validate.Method(nil).State)
}

func TestSuccessCodes(t *testing.T) {
	body := decode(t, `{"successCodes":[200,201,404]}`)
	f := validate.SuccessCodes(body["successCodes"])
	require.True(t, f.Ok())
	assert.Equal(t, []int{200, 201, 404}, f.Value)

	// Emptiness is not rejected.
	empty := validate.SuccessCodes(decode(t, `{"successCodes":[]}`)["successCodes"])
	require.True(t, empty.Ok())
	assert.Empty(t, empty.Value)

	assert.Equal(t, validate.Invalid, validate.SuccessCodes("200").State)
	assert.Equal(t, validate.Invalid, validate.SuccessCodes(decode(t, `{"successCodes":[200,"201"]}`)["successCodes"]).State)
	assert.Equal(t, validate.Invalid, validate.SuccessCodes(decode(t, `{"successCodes":[200.5]}`)["successCodes"]).State)
	assert.Equal(t, validate.Missing, validate.SuccessCodes(nil).State)
}

func TestTimeoutSeconds(t *testing.T) {
	for n := 1; n <= 5; n++ {
		f := validate.TimeoutSeconds(float64(n))
		require.True(t, f.Ok())
		assert.Equal(t, n, f.Value)
	}
	assert.Equal(t, validate.Invalid, validate.TimeoutSeconds(0.0).State)
	assert.Equal(t, validate.Invalid, validate.TimeoutSeconds(6.0).State)
	assert.Equal(t, validate.Invalid, validate.TimeoutSeconds(2.5).State)
	assert.Equal(t, validate.Invalid, validate.TimeoutSeconds("3").State)
	assert.Equal(t, validate.Missing, validate.TimeoutSeconds(nil).State)
}

func TestCheckID(t *testing.T) {
	id := strings.Repeat("a", check.IDLength)
	f := validate.CheckID(id)
	require.True(t, f.Ok())
	assert.Equal(t, id, f.Value)

	// Surrounding whitespace is trimmed before measuring.
	assert.True(t, validate.CheckID("  "+id+"  ").Ok())

	assert.Equal(t, validate.Invalid, validate.CheckID(strings.Repeat("a", 19)).State)
	assert.Equal(t, validate.Invalid, validate.CheckID(strings.Repeat("a", 21)).State)
	assert.Equal(t, validate.Invalid, validate.CheckID(12345.0).State)
	assert.Equal(t, validate.Missing, validate.CheckID(nil).State)
}
