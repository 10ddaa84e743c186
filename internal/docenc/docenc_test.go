package docenc

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupocolav/UkuPacha/internal/errs"
)

// failingLob simulates a driver handle whose content cannot be read.
type failingLob struct{}

func (failingLob) Open() (io.Reader, error) {
	return nil, errors.New("ORA-22922: nonexistent LOB value")
}

func TestNormalize_Timestamps(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want any
	}{
		{
			name: "subsecond precision keeps canonical form",
			in:   time.Date(2021, 3, 14, 9, 26, 53, 589_000_000, time.UTC),
			want: "2021-03-14T09:26:53.589Z",
		},
		{
			name: "whole-second date collapses to YYYYMMDD",
			in:   time.Date(1998, 11, 23, 10, 0, 0, 0, time.UTC),
			want: "19981123",
		},
		{
			name: "missing-time marker becomes null",
			in:   time.Time{},
			want: nil,
		},
		{
			name: "unrenderable year becomes null, never an error",
			in:   time.Date(12021, 1, 1, 0, 0, 0, 0, time.UTC),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, special, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.True(t, special)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_NilTimePointer(t *testing.T) {
	var ts *time.Time
	got, special, err := Normalize(ts)
	require.NoError(t, err)
	assert.True(t, special)
	assert.Nil(t, got)
}

func TestNormalize_Lob(t *testing.T) {
	got, special, err := Normalize(MemoryLob("contenido del resumen"))
	require.NoError(t, err)
	assert.True(t, special)
	assert.Equal(t, "contenido del resumen", got)
}

func TestNormalize_LobReadFailure(t *testing.T) {
	_, _, err := Normalize(failingLob{})
	require.Error(t, err)
	assert.True(t, errs.IsEncodingFailed(err))
}

func TestNormalize_Bytes(t *testing.T) {
	got, special, err := Normalize([]byte("raw text"))
	require.NoError(t, err)
	assert.True(t, special)
	assert.Equal(t, "raw text", got)
}

func TestNormalize_ObjectID(t *testing.T) {
	id := uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962")
	got, special, err := Normalize(id)
	require.NoError(t, err)
	assert.True(t, special)
	assert.Equal(t, "3b241101-e2bb-4255-8caf-4136c566a962", got)
}

func TestNormalize_PassThrough(t *testing.T) {
	for _, v := range []any{"plain", 42, 3.14, true, nil, map[string]any{"a": 1}} {
		got, special, err := Normalize(v)
		require.NoError(t, err)
		assert.False(t, special)
		assert.Equal(t, v, got)
	}
}

func TestSeries_ToDictBijection(t *testing.T) {
	s := NewSeries(
		[]string{"COD_RH", "TXT_NME_PROD", "NRO_VALOR"},
		[]any{"0000172057", "articulo", 7},
	)

	d := s.ToDict()

	// Every label becomes exactly one key; no values are lost.
	assert.Len(t, d, len(s.Labels))
	for i, label := range s.Labels {
		assert.Equal(t, s.Values[i], d[label])
	}
}

func TestNewSeries_LengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewSeries([]string{"A"}, []any{1, 2})
	})
}

func TestMarshal_NormalizesNestedValues(t *testing.T) {
	doc := map[string]any{
		"DB":      "__CVLAC__",
		"created": time.Date(2005, 6, 1, 0, 0, 0, 0, time.UTC),
		"summary": MemoryLob("texto largo"),
		"row": NewSeries(
			[]string{"ID", "FECHA"},
			[]any{int64(9), time.Date(2010, 2, 3, 0, 0, 0, 0, time.UTC)},
		),
		"tags": []any{time.Time{}, "kept"},
	}

	data, err := Marshal(doc)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "__CVLAC__", got["DB"])
	assert.Equal(t, "20050601", got["created"])
	assert.Equal(t, "texto largo", got["summary"])
	assert.Equal(t, map[string]any{"ID": float64(9), "FECHA": "20100203"}, got["row"])
	assert.Equal(t, []any{nil, "kept"}, got["tags"])
}

func TestMarshal_UnencodableFailsLoudly(t *testing.T) {
	_, err := Marshal(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.True(t, errs.IsEncodingFailed(err))
}

func TestMarshal_LobFailurePropagates(t *testing.T) {
	_, err := Marshal(map[string]any{"field": failingLob{}})
	require.Error(t, err)
	assert.True(t, errs.IsEncodingFailed(err))
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	in := map[string]any{"DB": "UDEA_CV", "n": float64(3)}

	data, err := Marshal(in)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestLobCodec_Registration(t *testing.T) {
	original := LobCodec()
	defer RegisterLobCodec(original)

	RegisterLobCodec(Codec{
		Inbound:  func(v any) (any, error) { return "redacted", nil },
		Outbound: func(v any) any { return v },
	})

	got, special, err := Normalize(MemoryLob("secret"))
	require.NoError(t, err)
	assert.True(t, special)
	assert.Equal(t, "redacted", got)

	// Outbound of the default codec is the identity.
	assert.Equal(t, "as-is", original.Outbound("as-is"))
}
