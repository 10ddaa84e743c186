package docenc

import "io"

// Codec is an inbound/outbound transform pair for one driver-native type.
// Inbound maps the native value to something the document encoding can
// represent; Outbound maps the encoded form back to the native side.
//
// Registration is static: the LOB codec is installed once at package load
// and may be replaced before any encoding starts, not per call.
type Codec struct {
	Inbound  func(v any) (any, error)
	Outbound func(v any) any
}

var lobCodec Codec

// RegisterLobCodec replaces the transform pair used for LOB handles.
func RegisterLobCodec(c Codec) {
	lobCodec = c
}

// LobCodec returns the currently registered LOB transform pair.
func LobCodec() Codec {
	return lobCodec
}

func init() {
	// Default LOB codec: inbound reads the handle to EOF and concatenates
	// the content into a single string; outbound is the identity, since the
	// encoded form is already a plain string.
	RegisterLobCodec(Codec{
		Inbound: func(v any) (any, error) {
			lob, ok := v.(Lob)
			if !ok {
				return v, nil
			}
			r, err := lob.Open()
			if err != nil {
				return nil, err
			}
			content, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			return string(content), nil
		},
		Outbound: func(v any) any { return v },
	})
}
