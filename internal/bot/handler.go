package bot

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/elkmoss/gritbot/internal/services"
)

// Assistant proxies free-text prompts to the language-model service.
type Assistant interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Coach(ctx context.Context, prompt string) (string, error)
}

const llmFailureReply = "❌ Sorry, I couldn't process your request. Please try again later."

// Handler routes inbound commands to the task service and renders replies.
type Handler struct {
	tasks     *services.TaskService
	assistant Assistant
	messenger services.Messenger
}

func NewHandler(tasks *services.TaskService, assistant Assistant, messenger services.Messenger) *Handler {
	return &Handler{tasks: tasks, assistant: assistant, messenger: messenger}
}

func (handler *Handler) HandleUpdate(ctx context.Context, update Update) {
	if update.Message == nil || strings.TrimSpace(update.Message.Text) == "" {
		return
	}

	externalID := strconv.FormatInt(update.Message.Chat.ID, 10)
	reply := handler.dispatch(ctx, externalID, update.Message.Text)
	if reply == "" {
		return
	}

	if err := handler.messenger.SendDirectMessage(ctx, externalID, reply); err != nil {
		log.Printf("bot: reply to chat %s failed: %v", externalID, err)
	}
}

func (handler *Handler) dispatch(ctx context.Context, externalID string, text string) string {
	command, args := splitCommand(text)

	switch command {
	case "start":
		return welcomeMessage
	case "help":
		return helpMessage
	case "addtask":
		return handler.handleAddTask(externalID, args)
	case "viewtasks":
		return handler.handleViewTasks(externalID)
	case "edittask":
		return handler.handleEditTask(externalID, args)
	case "donetask":
		return handler.handleDoneTask(externalID, args)
	case "badges":
		return handler.handleBadges(externalID)
	case "points":
		return handler.handlePoints(externalID)
	case "generate":
		return handler.handleGenerate(ctx, args)
	case "chat":
		return handler.handleChat(ctx, args)
	default:
		return "❓ I didn't understand that command. Use /help to see available commands."
	}
}

// splitCommand separates the leading /command from its argument text. The
// "@botname" suffix Telegram appends in group chats is stripped.
func splitCommand(text string) (string, string) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return "", trimmed
	}

	command := trimmed[1:]
	args := ""
	if space := strings.IndexAny(command, " \t\n"); space >= 0 {
		args = strings.TrimSpace(command[space:])
		command = command[:space]
	}
	command, _, _ = strings.Cut(command, "@")
	return strings.ToLower(command), args
}

func (handler *Handler) handleAddTask(externalID string, args string) string {
	if strings.TrimSpace(args) == "" {
		return "📝 Please provide the task description. Usage: /addtask Finish the report by Friday [Priority: High]"
	}

	task, err := handler.tasks.AddTask(externalID, args)
	if err != nil {
		return renderTaskError(err, "/addtask Finish the report by Friday [Priority: High]")
	}
	return renderTaskAdded(task)
}

func (handler *Handler) handleViewTasks(externalID string) string {
	tasks, err := handler.tasks.ListPending(externalID)
	if err != nil {
		return renderTaskError(err, "/viewtasks")
	}
	if len(tasks) == 0 {
		return "📭 You have no pending tasks. Use /addtask to add a new task."
	}
	return renderTaskList(tasks)
}

func (handler *Handler) handleEditTask(externalID string, args string) string {
	const usage = "/edittask 1 Update the report deadline to next Monday [Priority: High]"

	idText, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	taskID, ok := parseTaskID(idText)
	if !ok || strings.TrimSpace(rest) == "" {
		return "✏️ Please provide the task ID and the new details. Usage: " + usage
	}

	task, err := handler.tasks.EditTask(externalID, taskID, rest)
	if err != nil {
		return renderTaskError(err, usage)
	}
	return renderTaskEdited(task)
}

func (handler *Handler) handleDoneTask(externalID string, args string) string {
	taskID, ok := parseTaskID(strings.TrimSpace(args))
	if !ok {
		return "✅ Please provide the ID of the task you've completed. Usage: /donetask 1"
	}

	task, awarded, err := handler.tasks.CompleteTask(externalID, taskID)
	if err != nil {
		return renderTaskError(err, "/donetask 1")
	}
	return renderTaskCompleted(task, awarded)
}

func (handler *Handler) handleBadges(externalID string) string {
	user, badges, err := handler.tasks.Profile(externalID)
	if err != nil {
		return renderTaskError(err, "/badges")
	}
	return renderBadges(user, badges)
}

func (handler *Handler) handlePoints(externalID string) string {
	user, _, err := handler.tasks.Profile(externalID)
	if err != nil {
		return renderTaskError(err, "/points")
	}
	return renderPoints(user)
}

func (handler *Handler) handleGenerate(ctx context.Context, args string) string {
	if strings.TrimSpace(args) == "" {
		return "📝 Please provide a prompt for me to generate a response. Usage: /generate Tell me a joke."
	}

	reply, err := handler.assistant.Generate(ctx, args)
	if err != nil {
		log.Printf("bot: generate failed: %v", err)
		return llmFailureReply
	}
	return reply
}

func (handler *Handler) handleChat(ctx context.Context, args string) string {
	if strings.TrimSpace(args) == "" {
		return "🗣️ Please provide a message to chat with me. Usage: /chat How can I improve my productivity?"
	}

	reply, err := handler.assistant.Coach(ctx, args)
	if err != nil {
		log.Printf("bot: chat failed: %v", err)
		return llmFailureReply
	}
	return reply
}

func parseTaskID(text string) (uint, bool) {
	parsed, err := strconv.ParseUint(text, 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

func renderTaskError(err error, usage string) string {
	switch {
	case errors.Is(err, services.ErrEmptyDescription):
		return "📝 Please provide the task description. Usage: " + usage
	case errors.Is(err, services.ErrMalformedPriority):
		return "⚠️ I couldn't parse the priority. Please specify it as [Priority: High], [Priority: Medium], or [Priority: Low]."
	case errors.Is(err, services.ErrUnparsableDueDate):
		return "⚠️ I couldn't parse the due date. Please specify it clearly. Usage: " + usage
	case errors.Is(err, services.ErrTaskNotFound):
		return "⚠️ No pending task found with that ID."
	default:
		log.Printf("bot: command failed: %v", err)
		return "⚠️ An error occurred while executing the command. Please try again later."
	}
}
