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

package datasources

import (
	"context"
	"fmt"
	"strings"
	"sync"

	fs "github.com/ungerik/go-fs"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/tablekit/tablekit/core/colspec"
	"github.com/tablekit/tablekit/core/protoloader"
)

// ProtoLoader loads tables from textproto or binary proto files. Nested
// repeated messages are denormalized into flat rows with parent values
// repeated.
//
// Required config keys:
//   - proto_file: path to the data file (.textproto or .binpb)
//   - message_type: fully qualified proto message name
//
// Optional config keys:
//   - descriptor_set: path to a .pb FileDescriptorSet with the schema
//   - format: "textproto" or "binary" (inferred from the extension)
type ProtoLoader struct {
	mu       sync.Mutex
	registry *protoregistry.Files
	loader   *protoloader.Loader

	loadedDescriptors map[string]bool
}

// NewProtoLoader creates a proto loader with an empty registry.
func NewProtoLoader() *ProtoLoader {
	registry := new(protoregistry.Files)
	return &ProtoLoader{
		registry:          registry,
		loader:            protoloader.NewLoader(registry),
		loadedDescriptors: make(map[string]bool),
	}
}

// SourceType returns "textproto".
func (l *ProtoLoader) SourceType() string {
	return "textproto"
}

// DiscoverSchema derives the column definitions from the message
// descriptor alone; the data file is not read.
func (l *ProtoLoader) DiscoverSchema(ctx context.Context, config map[string]string) ([]colspec.Column, error) {
	messageType := config["message_type"]
	if messageType == "" {
		return nil, fmt.Errorf("proto loader: missing required config key message_type")
	}
	if descriptorSet := config["descriptor_set"]; descriptorSet != "" {
		if err := l.LoadDescriptorSet(ctx, descriptorSet); err != nil {
			return nil, fmt.Errorf("proto loader: %w", err)
		}
	}
	return l.loader.DiscoverColumns(messageType)
}

// Load reads and denormalizes the configured proto file.
func (l *ProtoLoader) Load(ctx context.Context, config map[string]string) (*Table, error) {
	protoFile := config["proto_file"]
	if protoFile == "" {
		return nil, fmt.Errorf("proto loader: missing required config key proto_file")
	}
	messageType := config["message_type"]
	if messageType == "" {
		return nil, fmt.Errorf("proto loader: missing required config key message_type")
	}

	if descriptorSet := config["descriptor_set"]; descriptorSet != "" {
		if err := l.LoadDescriptorSet(ctx, descriptorSet); err != nil {
			return nil, fmt.Errorf("proto loader: %w", err)
		}
	}

	format := config["format"]
	if format == "" {
		if strings.HasSuffix(protoFile, ".textproto") || strings.HasSuffix(protoFile, ".txtpb") {
			format = "textproto"
		} else {
			format = "binary"
		}
	}

	data, err := fs.File(protoFile).ReadAllContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("proto loader: reading %s: %w", protoFile, err)
	}

	var msg protoreflect.Message
	switch format {
	case "textproto":
		msg, err = l.loader.ParseTextproto(data, messageType)
	case "binary":
		msg, err = l.loader.ParseBinaryProto(data, messageType)
	default:
		return nil, fmt.Errorf("proto loader: unknown format %q (expected textproto or binary)", format)
	}
	if err != nil {
		return nil, err
	}

	cols, rows := l.loader.ExtractTable(msg)
	if len(rows) == 0 {
		return nil, fmt.Errorf("proto loader: no rows extracted from %s", protoFile)
	}
	return &Table{Columns: cols, Rows: rows}, nil
}

// LoadDescriptorSet loads a FileDescriptorSet file into the registry.
// Loading the same path twice is a no-op.
func (l *ProtoLoader) LoadDescriptorSet(ctx context.Context, path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loadedDescriptors[path] {
		return nil
	}

	data, err := fs.File(path).ReadAllContext(ctx)
	if err != nil {
		return fmt.Errorf("reading descriptor set %s: %w", path, err)
	}
	if err := l.registerDescriptorSet(data); err != nil {
		return err
	}
	l.loadedDescriptors[path] = true
	return nil
}

// RegisterDescriptorSet loads a FileDescriptorSet from raw bytes.
func (l *ProtoLoader) RegisterDescriptorSet(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registerDescriptorSet(data)
}

func (l *ProtoLoader) registerDescriptorSet(data []byte) error {
	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, fds); err != nil {
		return fmt.Errorf("unmarshaling descriptor set: %w", err)
	}
	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return fmt.Errorf("building file descriptors: %w", err)
	}

	var registerErr error
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		if _, err := l.registry.FindFileByPath(fd.Path()); err == nil {
			return true
		}
		if err := l.registry.RegisterFile(fd); err != nil {
			registerErr = err
			return false
		}
		return true
	})
	return registerErr
}

// RegisteredMessages returns all message names known to the loader.
func (l *ProtoLoader) RegisteredMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loader.RegisteredMessages()
}
