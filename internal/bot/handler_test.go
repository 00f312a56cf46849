package bot

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elkmoss/gritbot/internal/db"
	"github.com/elkmoss/gritbot/internal/services"
)

type fakeAssistant struct {
	reply string
	err   error
}

func (assistant *fakeAssistant) Generate(context.Context, string) (string, error) {
	return assistant.reply, assistant.err
}

func (assistant *fakeAssistant) Coach(context.Context, string) (string, error) {
	return assistant.reply, assistant.err
}

type recordingMessenger struct {
	sent []string
}

func (messenger *recordingMessenger) SendDirectMessage(_ context.Context, _ string, text string) error {
	messenger.sent = append(messenger.sent, text)
	return nil
}

func newTestHandler(t *testing.T, assistant Assistant) (*Handler, *recordingMessenger) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "gritbot_test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if assistant == nil {
		assistant = &fakeAssistant{reply: "ok"}
	}

	messenger := &recordingMessenger{}
	tasks := services.NewTaskService(db.NewStore(database))
	return NewHandler(tasks, assistant, messenger), messenger
}

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		text    string
		command string
		args    string
	}{
		{"/addtask Finish report", "addtask", "Finish report"},
		{"/ADDTASK Finish report", "addtask", "Finish report"},
		{"/viewtasks", "viewtasks", ""},
		{"/donetask@gritbot 3", "donetask", "3"},
		{"  /help  ", "help", ""},
		{"hello there", "", "hello there"},
	}

	for _, testCase := range cases {
		command, args := splitCommand(testCase.text)
		if command != testCase.command || args != testCase.args {
			t.Fatalf("%q: expected (%q, %q), got (%q, %q)", testCase.text, testCase.command, testCase.args, command, args)
		}
	}
}

func TestParseTaskID(t *testing.T) {
	if id, ok := parseTaskID("12"); !ok || id != 12 {
		t.Fatalf("expected (12, true), got (%d, %v)", id, ok)
	}
	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		if _, ok := parseTaskID(bad); ok {
			t.Fatalf("expected %q rejected", bad)
		}
	}
}

func TestDispatchAddAndViewTasks(t *testing.T) {
	handler, _ := newTestHandler(t, nil)
	ctx := context.Background()

	reply := handler.dispatch(ctx, "42", "/addtask Finish report [Priority: High]")
	if !strings.Contains(reply, "Task Added") || !strings.Contains(reply, "High") {
		t.Fatalf("unexpected add reply %q", reply)
	}

	reply = handler.dispatch(ctx, "42", "/viewtasks")
	if !strings.Contains(reply, "Finish report") {
		t.Fatalf("expected the pending task listed, got %q", reply)
	}

	reply = handler.dispatch(ctx, "7", "/viewtasks")
	if !strings.Contains(reply, "no pending tasks") {
		t.Fatalf("expected the empty-list hint, got %q", reply)
	}
}

func TestDispatchCompleteFlow(t *testing.T) {
	handler, _ := newTestHandler(t, nil)
	ctx := context.Background()

	handler.dispatch(ctx, "42", "/addtask Finish report")
	reply := handler.dispatch(ctx, "42", "/donetask 1")
	if !strings.Contains(reply, "earned 10 points") {
		t.Fatalf("unexpected completion reply %q", reply)
	}

	reply = handler.dispatch(ctx, "42", "/donetask 1")
	if !strings.Contains(reply, "No pending task") {
		t.Fatalf("expected the not-found hint on repeat completion, got %q", reply)
	}

	reply = handler.dispatch(ctx, "42", "/points")
	if !strings.Contains(reply, "10 points") {
		t.Fatalf("unexpected points reply %q", reply)
	}
}

func TestDispatchUsageHints(t *testing.T) {
	handler, _ := newTestHandler(t, nil)
	ctx := context.Background()

	cases := map[string]string{
		"/addtask":      "provide the task description",
		"/edittask":     "task ID and the new details",
		"/donetask":     "provide the ID",
		"/generate":     "provide a prompt",
		"/chat":         "provide a message",
		"/frobnicate":   "didn't understand",
		"plain message": "didn't understand",
	}
	for text, fragment := range cases {
		reply := handler.dispatch(ctx, "42", text)
		if !strings.Contains(reply, fragment) {
			t.Fatalf("%q: expected %q in reply, got %q", text, fragment, reply)
		}
	}
}

func TestDispatchParseErrorsSurfaceHints(t *testing.T) {
	handler, _ := newTestHandler(t, nil)
	ctx := context.Background()

	reply := handler.dispatch(ctx, "42", "/addtask Finish report [Priority: High")
	if !strings.Contains(reply, "couldn't parse the priority") {
		t.Fatalf("expected the priority hint, got %q", reply)
	}

	reply = handler.dispatch(ctx, "42", "/addtask Call mom by xyzzyplugh")
	if !strings.Contains(reply, "couldn't parse the due date") {
		t.Fatalf("expected the due date hint, got %q", reply)
	}
}

func TestDispatchAssistantFailureIsContained(t *testing.T) {
	handler, _ := newTestHandler(t, &fakeAssistant{err: errors.New("upstream down")})

	reply := handler.dispatch(context.Background(), "42", "/generate Tell me a joke.")
	if reply != llmFailureReply {
		t.Fatalf("expected the fixed failure reply, got %q", reply)
	}
}

func TestHandleUpdateSendsReply(t *testing.T) {
	handler, messenger := newTestHandler(t, nil)

	handler.HandleUpdate(context.Background(), Update{Message: &Message{Text: "/help", Chat: Chat{ID: 42}}})
	if len(messenger.sent) != 1 || !strings.Contains(messenger.sent[0], "To-Do Bot Commands") {
		t.Fatalf("expected the help reply sent, got %v", messenger.sent)
	}

	handler.HandleUpdate(context.Background(), Update{})
	if len(messenger.sent) != 1 {
		t.Fatalf("expected empty updates ignored, got %v", messenger.sent)
	}
}
