package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/elkmoss/gritbot/internal/models"
	"github.com/elkmoss/gritbot/internal/services"
)

const welcomeMessage = `Hello, I'm your AI-powered To-Do Bot! 🎉
Here are the commands you can use:
/addtask - Add a new task.
/viewtasks - View your pending tasks.
/edittask - Edit an existing task.
/donetask - Mark a task as complete.
/badges - View your achievements and badges.
/points - View your points.
/generate - Generate a response with the AI assistant.
/chat - Chat with the AI productivity coach.
/help - Show this help message.`

const helpMessage = `📚 To-Do Bot Commands
/start - Initialize interaction with the To-Do Bot.
/addtask - Add a new task. Usage: /addtask Finish the report by Friday [Priority: High]
/viewtasks - View your pending tasks.
/edittask - Edit an existing task. Usage: /edittask 1 Update the report deadline to next Monday [Priority: High]
/donetask - Mark a task as complete. Usage: /donetask 1
/badges - View your achievements and badges.
/points - View your accumulated points.
/generate - Generate a response with the AI assistant. Usage: /generate Tell me a joke.
/chat - Chat with the AI productivity coach. Usage: /chat How can I improve my productivity?
/help - Show this help message.`

func formatDueDate(dueAt time.Time) string {
	return dueAt.UTC().Format("2006-01-02 15:04:05 UTC")
}

func renderTaskAdded(task models.Task) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "✅ Task Added: %s\nID: %d\nPriority: %s", task.Description, task.ID, task.Priority)
	if task.DueAt != nil {
		fmt.Fprintf(&builder, "\n📅 Due Date: %s", formatDueDate(*task.DueAt))
	}
	return builder.String()
}

func renderTaskEdited(task models.Task) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "📝 Task ID %d Updated: %s\nPriority: %s", task.ID, task.Description, task.Priority)
	if task.DueAt != nil {
		fmt.Fprintf(&builder, "\n📅 Due Date: %s", formatDueDate(*task.DueAt))
	} else {
		builder.WriteString("\n📅 Due Date: Not Set")
	}
	return builder.String()
}

func renderTaskList(tasks []models.Task) string {
	var builder strings.Builder
	builder.WriteString("📋 Your Pending Tasks")
	for _, task := range tasks {
		fmt.Fprintf(&builder, "\n\nID %d: %s", task.ID, task.Description)
		if task.DueAt != nil {
			fmt.Fprintf(&builder, "\n📅 Due: %s", formatDueDate(*task.DueAt))
		}
		fmt.Fprintf(&builder, "\n🔺 Priority: %s", task.Priority)
	}
	return builder.String()
}

func renderTaskCompleted(task models.Task, awarded []string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "🎉 Great job on completing your task: %s!\n🏆 You've earned %d points!\nUse /points to view your total points.", task.Description, services.TaskCompletionPoints)
	if len(awarded) > 0 {
		fmt.Fprintf(&builder, "\n\n🏆 Congratulations! You've earned new badge(s): %s", strings.Join(awarded, ", "))
	}
	return builder.String()
}

func renderBadges(user models.User, badges []string) string {
	earned := "None yet. Complete tasks to earn badges!"
	if len(badges) > 0 {
		earned = strings.Join(badges, ", ")
	}
	return fmt.Sprintf("🏅 Your Achievements and Badges\n📈 Current Streak: %d day(s)\n🏆 Badges Earned: %s", user.Streak, earned)
}

func renderPoints(user models.User) string {
	return fmt.Sprintf("⭐ Your Points\nYou have accumulated %d points!", user.Points)
}
