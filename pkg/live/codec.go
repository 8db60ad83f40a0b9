package live

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes messages on a websocket connection.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error

	// MessageType is the websocket message type frames are sent as.
	MessageType() int
}

// JSON encodes messages as JSON text frames.
var JSON Codec = jsonCodec{}

// Msgpack encodes messages as MessagePack binary frames.
var Msgpack Codec = msgpackCodec{}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) MessageType() int                   { return websocket.TextMessage }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return "msgpack" }
func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (msgpackCodec) MessageType() int                   { return websocket.BinaryMessage }

// CodecFor returns the codec with the given name.
func CodecFor(name string) (Codec, error) {
	switch name {
	case "json":
		return JSON, nil
	case "msgpack":
		return Msgpack, nil
	default:
		return nil, fmt.Errorf("live: unknown codec %q", name)
	}
}
