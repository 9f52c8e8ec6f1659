/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Tablekit Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package protoloader parses textproto and binary proto files with dynamic
// schema discovery and denormalizes nested repeated messages into flat grid
// rows. Message types are resolved against a pre-populated proto registry.
package protoloader

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/tablekit/tablekit/core/cells"
	"github.com/tablekit/tablekit/core/colspec"
)

// Loader parses proto data against a registry of message descriptors.
type Loader struct {
	registry *protoregistry.Files
}

// NewLoader creates a Loader. The registry should be pre-populated with all
// required message descriptors.
func NewLoader(registry *protoregistry.Files) *Loader {
	return &Loader{registry: registry}
}

func (l *Loader) messageDescriptor(messageName string) (protoreflect.MessageDescriptor, error) {
	desc, err := l.registry.FindDescriptorByName(protoreflect.FullName(messageName))
	if err != nil {
		return nil, fmt.Errorf("message %q not found in registry: %w", messageName, err)
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", messageName)
	}
	return msgDesc, nil
}

// ParseTextproto parses textproto data into a dynamic message of the given
// fully qualified type.
func (l *Loader) ParseTextproto(data []byte, messageName string) (protoreflect.Message, error) {
	msgDesc, err := l.messageDescriptor(messageName)
	if err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(msgDesc)
	opts := prototext.UnmarshalOptions{Resolver: l}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("parsing textproto: %w", err)
	}
	return msg.ProtoReflect(), nil
}

// ParseBinaryProto parses binary wire-format data into a dynamic message of
// the given fully qualified type.
func (l *Loader) ParseBinaryProto(data []byte, messageName string) (protoreflect.Message, error) {
	msgDesc, err := l.messageDescriptor(messageName)
	if err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(msgDesc)
	opts := proto.UnmarshalOptions{Resolver: l}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("parsing binary proto: %w", err)
	}
	return msg.ProtoReflect(), nil
}

// FindMessageByName implements protoregistry.MessageTypeResolver.
func (l *Loader) FindMessageByName(name protoreflect.FullName) (protoreflect.MessageType, error) {
	desc, err := l.registry.FindDescriptorByName(name)
	if err != nil {
		return nil, err
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", name)
	}
	return dynamicpb.NewMessageType(msgDesc), nil
}

// FindMessageByURL implements protoregistry.MessageTypeResolver.
func (l *Loader) FindMessageByURL(url string) (protoreflect.MessageType, error) {
	name := protoreflect.FullName(strings.TrimPrefix(url, "type.googleapis.com/"))
	return l.FindMessageByName(name)
}

// FindExtensionByName implements protoregistry.ExtensionTypeResolver.
func (l *Loader) FindExtensionByName(name protoreflect.FullName) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// FindExtensionByNumber implements protoregistry.ExtensionTypeResolver.
func (l *Loader) FindExtensionByNumber(message protoreflect.FullName, field protoreflect.FieldNumber) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// HierarchyLevel is one level in a linear message hierarchy.
type HierarchyLevel struct {
	// FieldDesc is the repeated message field leading to the next level
	// (nil for the leaf level).
	FieldDesc protoreflect.FieldDescriptor
	// ScalarFields are the non-message fields at this level, each becoming
	// a grid column.
	ScalarFields []protoreflect.FieldDescriptor
}

// FindLinearHierarchy walks a message descriptor and returns the linear
// chain of nested repeated messages, root to leaf. A message with several
// repeated message fields follows the first one.
func (l *Loader) FindLinearHierarchy(msgDesc protoreflect.MessageDescriptor) []HierarchyLevel {
	var levels []HierarchyLevel
	current := msgDesc

	for current != nil {
		level := HierarchyLevel{}
		var nextLevel protoreflect.MessageDescriptor

		fields := current.Fields()
		for i := 0; i < fields.Len(); i++ {
			fd := fields.Get(i)
			if fd.Kind() == protoreflect.MessageKind && fd.Cardinality() == protoreflect.Repeated {
				if level.FieldDesc == nil {
					level.FieldDesc = fd
					nextLevel = fd.Message()
				}
				continue
			}
			if fd.Kind() != protoreflect.MessageKind {
				level.ScalarFields = append(level.ScalarFields, fd)
			}
		}

		levels = append(levels, level)
		current = nextLevel
	}

	return levels
}

// rowBuilder accumulates denormalized rows from a hierarchical message.
// Parent-level values repeat on every descendant row.
type rowBuilder struct {
	fields        []protoreflect.FieldDescriptor
	rows          []cells.Row
	current       map[string]any
	fieldsByLevel [][]string
}

func newRowBuilder(hierarchy []HierarchyLevel) *rowBuilder {
	rb := &rowBuilder{
		current:       make(map[string]any),
		fieldsByLevel: make([][]string, len(hierarchy)),
	}
	for i, level := range hierarchy {
		for _, fd := range level.ScalarFields {
			rb.fields = append(rb.fields, fd)
			rb.fieldsByLevel[i] = append(rb.fieldsByLevel[i], string(fd.Name()))
		}
	}
	return rb
}

// clearFromLevel drops values at and below the given level so rows emitted
// for a new branch never carry stale descendant data.
func (rb *rowBuilder) clearFromLevel(level int) {
	for i := level; i < len(rb.fieldsByLevel); i++ {
		for _, name := range rb.fieldsByLevel[i] {
			delete(rb.current, name)
		}
	}
}

func (rb *rowBuilder) emitRow() {
	row := make(cells.Row, len(rb.fields))
	for _, fd := range rb.fields {
		name := string(fd.Name())
		if v, ok := rb.current[name]; ok {
			row[name] = v
		}
	}
	rb.rows = append(rb.rows, row)
}

// ExtractTable walks the message hierarchy and returns the flattened
// column definitions and rows.
func (l *Loader) ExtractTable(msg protoreflect.Message) ([]colspec.Column, []cells.Row) {
	hierarchy := l.FindLinearHierarchy(msg.Descriptor())
	rb := newRowBuilder(hierarchy)
	l.walkHierarchy(msg, hierarchy, 0, rb)

	cols := make([]colspec.Column, len(rb.fields))
	for i, fd := range rb.fields {
		cols[i] = columnFor(fd)
	}
	return cols, rb.rows
}

func (l *Loader) walkHierarchy(msg protoreflect.Message, hierarchy []HierarchyLevel, depth int, rb *rowBuilder) {
	if depth >= len(hierarchy) {
		return
	}
	level := hierarchy[depth]

	for _, fd := range level.ScalarFields {
		rb.current[string(fd.Name())] = valueOf(msg.Get(fd), fd)
	}

	if level.FieldDesc == nil || depth == len(hierarchy)-1 {
		rb.emitRow()
		return
	}

	list := msg.Get(level.FieldDesc).List()
	if list.Len() == 0 {
		rb.clearFromLevel(depth + 1)
		rb.emitRow()
		return
	}
	for i := 0; i < list.Len(); i++ {
		rb.clearFromLevel(depth + 1)
		l.walkHierarchy(list.Get(i).Message(), hierarchy, depth+1, rb)
	}
}

// valueOf converts a protoreflect.Value to the Go value stored in a row.
// Numeric kinds stay numeric so sorting compares values, not digits.
func valueOf(val protoreflect.Value, fd protoreflect.FieldDescriptor) any {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return val.Bool()
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return val.Int()
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return val.Uint()
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return val.Float()
	case protoreflect.StringKind:
		return val.String()
	case protoreflect.BytesKind:
		return string(val.Bytes())
	case protoreflect.EnumKind:
		if enumVal := fd.Enum().Values().ByNumber(val.Enum()); enumVal != nil {
			return string(enumVal.Name())
		}
		return int64(val.Enum())
	default:
		return val.String()
	}
}

// columnFor derives a grid column from a field descriptor.
func columnFor(fd protoreflect.FieldDescriptor) colspec.Column {
	name := string(fd.Name())
	col := colspec.Column{
		Key:       name,
		DataIndex: name,
		Title:     titleFor(name),
		Sorter:    true,
	}
	switch fd.Kind() {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind,
		protoreflect.FloatKind, protoreflect.DoubleKind:
		col.Align = colspec.AlignRight
	}
	return col
}

func titleFor(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// DiscoverColumns derives the flattened column definitions for a message
// type from its descriptor alone, without parsing any data.
func (l *Loader) DiscoverColumns(messageName string) ([]colspec.Column, error) {
	msgDesc, err := l.messageDescriptor(messageName)
	if err != nil {
		return nil, err
	}
	var cols []colspec.Column
	for _, level := range l.FindLinearHierarchy(msgDesc) {
		for _, fd := range level.ScalarFields {
			cols = append(cols, columnFor(fd))
		}
	}
	return cols, nil
}

// RegisteredMessages returns the fully qualified names of all messages in
// the registry.
func (l *Loader) RegisteredMessages() []string {
	var messages []string
	l.registry.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		msgs := fd.Messages()
		for i := 0; i < msgs.Len(); i++ {
			messages = append(messages, string(msgs.Get(i).FullName()))
		}
		return true
	})
	return messages
}
