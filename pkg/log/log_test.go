// Copyright 2025 DevConsole Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetDefaults(t *testing.T) {
	conf := &Conf{}
	conf.SetDefaults()

	if conf.Output != "stdout" {
		t.Errorf("expected output to be stdout, got %s", conf.Output)
	}

	if conf.Level != "INFO" {
		t.Errorf("expected level to be INFO, got %s", conf.Level)
	}

	if conf.KeepDays != 7 {
		t.Errorf("expected KeepDays to be 7, got %d", conf.KeepDays)
	}
}

func TestHelpersBeforeInit(t *testing.T) {
	// must not panic even when NewLog has never run
	Infow("startup", "phase", "early")
	Errorf("early failure: %d", 1)
	Warn("early warning")
}

func TestValidateFileOutput(t *testing.T) {
	conf := &Conf{Output: "file"}
	if err := conf.Validate(); err == nil {
		t.Error("expected error when file output has no path")
	}

	conf = &Conf{Output: "file", Path: "/tmp/logs"}
	if err := conf.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if conf.RotateSize != 100 || conf.RotateNum != 10 || conf.KeepDays != 7 {
		t.Errorf("zero values not filled with defaults: %+v", conf)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"DEBUG", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"WARNING", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"FATAL", zapcore.FatalLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, c := range cases {
		if got := parseLogLevel(c.in); got != c.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewLogStdout(t *testing.T) {
	conf := &Conf{}
	conf.SetDefaults()
	l, err := NewLog(conf)
	if err != nil {
		t.Fatalf("NewLog failed: %v", err)
	}
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if GetLogger() == nil {
		t.Fatal("expected global sugared logger to be set")
	}
}
