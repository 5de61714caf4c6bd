package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// TestParseLevel 测试日志级别解析
func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"大写DEBUG", "DEBUG", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning别名", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"未知级别默认info", "unknown", slog.LevelInfo},
		{"空字符串默认info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLevel(tt.input)
			if got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, 期望 %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestLevelTag 测试日志级别标签
func TestLevelTag(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelError, "ERROR"},
		{slog.LevelWarn, "WARN "},
		{slog.LevelInfo, "INFO "},
		{slog.LevelDebug, "DEBUG"},
	}

	for _, tt := range tests {
		if got := levelTag(tt.level); got != tt.expected {
			t.Errorf("levelTag(%v) = %q, 期望 %q", tt.level, got, tt.expected)
		}
	}
}

// TestFormatAttr 测试属性格式化
func TestFormatAttr(t *testing.T) {
	tests := []struct {
		name     string
		group    string
		attr     slog.Attr
		expected string
	}{
		{"无分组", "", slog.String("axis", "RightStickY"), "  axis=RightStickY"},
		{"有分组", "demand", slog.String("source", "keyboard"), "  demand.source=keyboard"},
		{"整数值", "", slog.Int("actuators", 6), "  actuators=6"},
		{"浮点保留三位", "", slog.Float64("pitch", 12.34567), "  pitch=12.346"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatAttr(tt.group, tt.attr)
			if got != tt.expected {
				t.Errorf("formatAttr(%q, %v) = %q, 期望 %q", tt.group, tt.attr, got, tt.expected)
			}
		})
	}
}

// TestConsoleHandlerEnabled 测试 consoleHandler 的级别过滤
func TestConsoleHandlerEnabled(t *testing.T) {
	h := &consoleHandler{level: slog.LevelInfo}

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info 级别应该被启用")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Error 级别应该被启用")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug 级别不应该被启用")
	}
}

// TestConsoleHandlerHandle 测试 consoleHandler 的日志输出
func TestConsoleHandlerHandle(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler("console", &buf, slog.LevelDebug)

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "demand updated", 0)
	record.AddAttrs(slog.Float64("pitch", 4), slog.String("source", "keyboard"))

	if err := h.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() 返回错误: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"12:00:00", "INFO", "demand updated", "pitch=4.000", "source=keyboard"} {
		if !strings.Contains(output, want) {
			t.Errorf("输出应包含 %q, 实际: %q", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("输出应以换行符结尾, 实际: %q", output)
	}
}

// TestConsoleHandlerWithAttrs 测试 WithAttrs 创建新 handler
func TestConsoleHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "control")})

	if len(h.attrs) != 0 {
		t.Error("原始 handler 的 attrs 不应该被修改")
	}

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	if err := h2.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() 返回错误: %v", err)
	}

	if !strings.Contains(buf.String(), "component=control") {
		t.Errorf("输出应包含预设属性, 实际: %q", buf.String())
	}
}

// TestConsoleHandlerWithNestedGroup 测试嵌套分组
func TestConsoleHandlerWithNestedGroup(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithGroup("pose").WithGroup("actuator")

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	record.AddAttrs(slog.Int("index", 2))
	if err := h2.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle() 返回错误: %v", err)
	}

	if !strings.Contains(buf.String(), "pose.actuator.index=2") {
		t.Errorf("输出应包含嵌套分组前缀, 实际: %q", buf.String())
	}
}

// TestNewHandlerFormats 测试不同格式的 handler 选择
func TestNewHandlerFormats(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := newHandler("console", &buf, slog.LevelInfo).(*consoleHandler); !ok {
		t.Error("console 格式应返回 consoleHandler")
	}
	if _, ok := newHandler("", &buf, slog.LevelInfo).(*consoleHandler); !ok {
		t.Error("默认格式应返回 consoleHandler")
	}
	if _, ok := newHandler("text", &buf, slog.LevelInfo).(*slog.TextHandler); !ok {
		t.Error("text 格式应返回 TextHandler")
	}

	h := newHandler("json", &buf, slog.LevelInfo)
	slog.New(h).Info("tick", "actuators", 3)
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("json 输出无法解析: %v (%q)", err, buf.String())
	}
	if line["msg"] != "tick" {
		t.Errorf("msg = %v, 期望 tick", line["msg"])
	}
}
