// Package codec provides the serialization formats used to move cache
// snapshots through external stores. A snapshot is encoded to bytes by a
// Codec before it is written to a file or a Redis key, and decoded on the
// way back in.
//
// Package codec 提供将缓存快照写入外部存储所用的序列化格式。
// 快照在写入文件或Redis键之前由Codec编码为字节，读取时再解码还原。
package codec

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"github.com/noobtrump/lcache/pkg/errors"
)

// Codec defines the interface for encoding and decoding snapshot containers.
// Implementations can be swapped to trade readability (JSON) against
// compactness and type fidelity (Gob).
//
// Codec 定义快照容器的编码和解码接口。
// 不同实现可以在可读性（JSON）与紧凑性和类型保真度（Gob）之间权衡。
type Codec interface {
	// Marshal serializes a value into bytes.
	//
	// Marshal 将值序列化为字节。
	//
	// Parameters:
	//   - value: The value to serialize
	//
	// Returns:
	//   - []byte: The serialized bytes
	//   - error: An error if serialization fails
	Marshal(value interface{}) ([]byte, error)

	// Unmarshal deserializes bytes into a value.
	// The value parameter must be a pointer to the target type.
	//
	// Unmarshal 将字节反序列化为值。
	// value参数必须是目标类型的指针。
	//
	// Parameters:
	//   - data: The bytes to deserialize
	//   - value: A pointer to the target value
	//
	// Returns:
	//   - error: An error if deserialization fails
	Unmarshal(data []byte, value interface{}) error

	// Name returns the name of this codec, matching the names accepted by
	// GetCodec and by the persist configuration.
	//
	// Name 返回此编解码器的名称，与GetCodec及持久化配置接受的名称一致。
	//
	// Returns:
	//   - string: The codec name
	Name() string
}

// JSONCodec implements Codec using JSON serialization. Snapshots written
// with it are human-readable and diffable, which makes it the default.
//
// JSONCodec 使用JSON序列化实现Codec。
// 用它写出的快照是人类可读且可比对的，因此作为默认选择。
type JSONCodec struct {
	// Pretty determines whether to use indented JSON encoding.
	//
	// Pretty 决定是否使用缩进的JSON编码。
	Pretty bool
}

// Marshal serializes a value into JSON bytes.
// If Pretty is true, the output will be indented.
//
// Marshal 将值序列化为JSON字节。
// 如果Pretty为true，输出将带有缩进。
//
// Parameters:
//   - value: The value to serialize to JSON
//
// Returns:
//   - []byte: The JSON bytes
//   - error: An error if JSON serialization fails
func (c *JSONCodec) Marshal(value interface{}) ([]byte, error) {
	if c.Pretty {
		return json.MarshalIndent(value, "", "  ")
	}
	return json.Marshal(value)
}

// Unmarshal deserializes JSON bytes into a value.
// The value parameter must be a pointer to the target type.
//
// Unmarshal 将JSON字节反序列化为值。
// value参数必须是目标类型的指针。
//
// Parameters:
//   - data: The JSON bytes to deserialize
//   - value: A pointer to the target value
//
// Returns:
//   - error: An error if JSON deserialization fails
func (c *JSONCodec) Unmarshal(data []byte, value interface{}) error {
	return json.Unmarshal(data, value)
}

// Name returns the name of this codec.
//
// Name 返回此编解码器的名称。
//
// Returns:
//   - string: Always returns "json"
func (c *JSONCodec) Name() string {
	return "json"
}

// NewJSONCodec creates a new JSONCodec.
//
// NewJSONCodec 创建一个新的JSONCodec。
//
// Parameters:
//   - pretty: Whether to use indented JSON encoding
//
// Returns:
//   - *JSONCodec: A new JSON codec instance
func NewJSONCodec(pretty bool) *JSONCodec {
	return &JSONCodec{Pretty: pretty}
}

// GobCodec implements Codec using Gob serialization. Gob keeps Go type
// information through the round trip, so values that JSON would flatten
// (e.g. int64 map values) come back with their original types.
//
// GobCodec 使用Gob序列化实现Codec。
// Gob在往返过程中保留Go类型信息，JSON会扁平化的值（如int64）能以原始类型还原。
type GobCodec struct{}

// Marshal serializes a value into Gob bytes.
// The value must be encodable by the gob package.
//
// Marshal 将值序列化为Gob字节。
// 该值必须可由gob包编码。
//
// Parameters:
//   - value: The value to serialize
//
// Returns:
//   - []byte: The serialized bytes
//   - error: An error if Gob serialization fails
func (c *GobCodec) Marshal(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes Gob bytes into a value.
// The value parameter must be a pointer to the target type.
//
// Unmarshal 将Gob字节反序列化为值。
// value参数必须是目标类型的指针。
//
// Parameters:
//   - data: The Gob bytes to deserialize
//   - value: A pointer to the target value
//
// Returns:
//   - error: An error if Gob deserialization fails
func (c *GobCodec) Unmarshal(data []byte, value interface{}) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(value)
}

// Name returns the name of this codec.
//
// Name 返回此编解码器的名称。
//
// Returns:
//   - string: Always returns "gob"
func (c *GobCodec) Name() string {
	return "gob"
}

// NewGobCodec creates a new GobCodec.
//
// NewGobCodec 创建一个新的GobCodec。
//
// Returns:
//   - *GobCodec: A new Gob codec instance
func NewGobCodec() *GobCodec {
	return &GobCodec{}
}

// DefaultCodec returns the default codec (JSON).
// This is used when no specific codec is configured.
//
// DefaultCodec 返回默认编解码器（JSON）。
// 当未配置特定编解码器时使用。
//
// Returns:
//   - Codec: A default JSON codec instance
func DefaultCodec() Codec {
	return NewJSONCodec(false)
}

// GetCodec returns a codec by name.
// Supported names: "json", "gob".
//
// GetCodec 通过名称返回编解码器。
// 支持的名称："json"、"gob"。
//
// Parameters:
//   - name: The codec name
//
// Returns:
//   - Codec: The requested codec
//   - error: ErrUnknownCodec if the codec name is unknown
func GetCodec(name string) (Codec, error) {
	switch name {
	case "json":
		return NewJSONCodec(false), nil
	case "gob":
		return NewGobCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownCodec, name)
	}
}
