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

package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var b bytes.Buffer
	logrus.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: true})
	SetOutput(&b)
	t.Cleanup(Discard)
	return &b
}

func TestLog(t *testing.T) {
	b := capture(t)
	l := New("foons", "basearg", 1)
	l.Info("test")

	expect := `{"basearg":1,"level":"info","msg":"test","ns":"foons"}` + "\n"
	if b.String() != expect {
		t.Fatal("unexpected log:", b.String())
	}
}

func TestErrorShortcut(t *testing.T) {
	b := capture(t)
	l := New("foons")
	l.Error("load failed", errors.New("fooerr"))

	if !strings.Contains(b.String(), `"error":"fooerr"`) {
		t.Fatal("expected error field, got:", b.String())
	}
}

func TestWithFields(t *testing.T) {
	b := capture(t)
	l := New("foons").WithFields("table", "channels")
	l.Info("loaded", "rows", 48)

	out := b.String()
	for _, want := range []string{`"table":"channels"`, `"rows":48`, `"ns":"foons"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log, got: %s", want, out)
		}
	}
}
