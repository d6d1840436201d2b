package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"physics-tutor/internal/account"
	"physics-tutor/internal/feedback"
	"physics-tutor/internal/journal"
	"physics-tutor/internal/session"
	"physics-tutor/internal/settings"
	"physics-tutor/internal/solver"
)

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	log.Printf("incoming message from chat %d: %q", msg.Chat.ID, text)

	if strings.HasPrefix(text, "/") {
		b.handleCommand(msg.Chat.ID, text)
		return
	}
	b.handleQuestion(ctx, msg.Chat.ID, text)
}

func (b *Bot) handleCommand(chatID int64, text string) {
	cmd, arg := splitCommand(text)
	switch cmd {
	case "/start", "/help":
		b.sendMessage(chatID, helpText)
	case "/register":
		b.handleRegister(chatID, arg)
	case "/login":
		b.handleLogin(chatID, arg)
	case "/admin":
		b.handleAdminLogin(chatID, arg)
	case "/logout":
		b.handleLogout(chatID)
	case "/time":
		b.handleTime(chatID)
	case "/users":
		b.adminOnly(chatID, func() { b.handleUsers(chatID) })
	case "/ban":
		b.adminOnly(chatID, func() { b.handleBan(chatID, arg) })
	case "/limit":
		b.adminOnly(chatID, func() { b.handleLimit(chatID, arg) })
	case "/default":
		b.adminOnly(chatID, func() { b.handleDefault(chatID, arg) })
	case "/verify":
		b.adminOnly(chatID, func() { b.handleVerify(chatID, arg) })
	case "/feedbacks":
		b.adminOnly(chatID, func() { b.handleFeedbacks(chatID) })
	case "/review":
		b.adminOnly(chatID, func() { b.handleReview(chatID, arg) })
	case "/dashboard":
		b.handleNavigate(chatID, session.ViewAdmin)
	case "/home":
		b.handleNavigate(chatID, session.ViewHome)
	default:
		b.sendMessage(chatID, "Unknown command. Send /help for the list.")
	}
}

const helpText = `Physics tutor commands:
/register <name> - create an account and start a session
/login <name> - sign in
/logout - sign out
/time - remaining session time
Send any other text as a physics problem to solve.

Admin:
/admin <name> - sign in as administrator
/users, /ban <name>, /limit <name> <minutes>, /default <minutes>
/verify <question> | <solution>, /feedbacks, /review <id> <correction>
/dashboard, /home`

func (b *Bot) handleRegister(chatID int64, arg string) {
	name := strings.TrimSpace(arg)
	if name == "" {
		b.sendMessage(chatID, "Usage: /register <name>")
		return
	}
	a, err := b.sessions.Register(name)
	if err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	b.setActiveChat(chatID)
	b.record(journal.Event{Username: a.Username, Kind: journal.KindRegistration})
	b.sendMessage(chatID, fmt.Sprintf("Welcome, %s! You have %s of session time. Send me a physics problem.",
		a.Username, formatDuration(b.sessions.Remaining())))
}

func (b *Bot) handleLogin(chatID int64, arg string) {
	name := strings.TrimSpace(arg)
	if name == "" {
		b.sendMessage(chatID, "Usage: /login <name>")
		return
	}
	err := b.sessions.Login(account.Account{Username: name, Role: account.RoleUser})
	if err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	b.setActiveChat(chatID)
	b.record(journal.Event{Username: name, Kind: journal.KindLogin})
	b.sendMessage(chatID, fmt.Sprintf("Signed in as %s. Remaining time: %s.",
		name, formatDuration(b.sessions.Remaining())))
}

// handleAdminLogin is the bootstrap path: any claimant is admitted and the
// account is created if missing. Verifying who may claim it is this front
// end's deployment concern (a private chat with the bot), not the core's.
func (b *Bot) handleAdminLogin(chatID int64, arg string) {
	name := strings.TrimSpace(arg)
	if name == "" {
		b.sendMessage(chatID, "Usage: /admin <name>")
		return
	}
	candidate := account.Account{
		Username:         name,
		Role:             account.RoleAdmin,
		RegistrationDate: time.Now().Format("2006-01-02"),
	}
	if err := b.sessions.Login(candidate); err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	b.setActiveChat(chatID)
	b.record(journal.Event{Username: name, Kind: journal.KindLogin, Detail: "admin"})
	b.sendMessage(chatID, fmt.Sprintf("Signed in as administrator %s. Dashboard is open.", name))
}

func (b *Bot) handleLogout(chatID int64) {
	cur, ok := b.sessions.Current()
	if !ok {
		b.sendMessage(chatID, "No active session.")
		return
	}
	if err := b.sessions.Logout(); err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	b.setActiveChat(0)
	b.sendMessage(chatID, fmt.Sprintf("Goodbye, %s.", cur.Username))
}

func (b *Bot) handleTime(chatID int64) {
	cur, ok := b.sessions.Current()
	if !ok {
		b.sendMessage(chatID, "No active session.")
		return
	}
	if cur.Role == account.RoleAdmin {
		b.sendMessage(chatID, "Administrator sessions are not time-limited.")
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Remaining time: %s.", formatDuration(b.sessions.Remaining())))
}

func (b *Bot) handleNavigate(chatID int64, v session.View) {
	if err := b.sessions.Navigate(v); err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Switched to the %s view.", v))
}

func (b *Bot) handleUsers(chatID int64) {
	var sb strings.Builder
	sb.WriteString("Accounts:\n")
	for _, a := range b.registry.List() {
		fmt.Fprintf(&sb, "- %s (%s, registered %s)", a.Username, a.Role, a.RegistrationDate)
		if a.IsBanned {
			sb.WriteString(" [banned]")
		}
		if a.SessionLimitMinutes != nil {
			fmt.Fprintf(&sb, " [limit %d min]", *a.SessionLimitMinutes)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\nGlobal default: %d min", b.settings.Get())
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) handleBan(chatID int64, arg string) {
	name := strings.TrimSpace(arg)
	if name == "" {
		b.sendMessage(chatID, "Usage: /ban <name>")
		return
	}
	if err := b.registry.ToggleBan(name); err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	a, _ := b.registry.FindByUsername(name)
	if a.IsBanned {
		b.sendMessage(chatID, fmt.Sprintf("%s is now banned.", name))
	} else {
		b.sendMessage(chatID, fmt.Sprintf("%s is no longer banned.", name))
	}
}

func (b *Bot) handleLimit(chatID int64, arg string) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		b.sendMessage(chatID, "Usage: /limit <name> <minutes>")
		return
	}
	minutes, err := strconv.Atoi(fields[1])
	if err != nil {
		b.sendMessage(chatID, "Minutes must be a number.")
		return
	}
	if err := b.registry.SetPersonalLimit(fields[0], minutes); err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Session limit for %s set to %d minutes.", fields[0], minutes))
}

func (b *Bot) handleDefault(chatID int64, arg string) {
	minutes, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		b.sendMessage(chatID, "Usage: /default <minutes>")
		return
	}
	if err := b.settings.Set(minutes); err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Global default session length set to %d minutes.", minutes))
}

func (b *Bot) handleVerify(chatID int64, arg string) {
	parts := strings.SplitN(arg, "|", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		b.sendMessage(chatID, "Usage: /verify <question> | <solution>")
		return
	}
	if err := b.examples.Add(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Added to the knowledge base (%d examples).", len(b.examples.List())))
}

func (b *Bot) handleFeedbacks(chatID int64) {
	items := b.feedbacks.List()
	if len(items) == 0 {
		b.sendMessage(chatID, "No feedback recorded.")
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Feedback (%d, newest first):\n", len(items))
	for _, fb := range items {
		fmt.Fprintf(&sb, "- [%s] %s: %q -> %s\n", fb.Status, fb.ID, fb.UserQuestion, fb.AIResponse.Result)
		if fb.AdminCorrection != "" {
			fmt.Fprintf(&sb, "  correction: %s\n", fb.AdminCorrection)
		}
	}
	b.sendMessage(chatID, sb.String())
}

func (b *Bot) handleReview(chatID int64, arg string) {
	fields := strings.SplitN(strings.TrimSpace(arg), " ", 2)
	if len(fields) != 2 {
		b.sendMessage(chatID, "Usage: /review <id> <correction>")
		return
	}
	if err := b.feedbacks.Review(fields[0], strings.TrimSpace(fields[1])); err != nil {
		b.sendMessage(chatID, errText(err))
		return
	}
	b.sendMessage(chatID, "Feedback marked as reviewed.")
}

func (b *Bot) handleQuestion(ctx context.Context, chatID int64, question string) {
	cur, ok := b.sessions.Current()
	if !ok {
		b.sendMessage(chatID, "Please /login or /register first.")
		return
	}

	sol, err := b.solve.Solve(ctx, question, b.examples.List())
	if err != nil {
		log.Printf("solver failed: %v", err)
		b.sendMessage(chatID, "Sorry, I could not solve that one. Try rephrasing the problem.")
		return
	}

	b.mu.Lock()
	b.lastAsked[chatID] = solved{question: question, solution: sol}
	b.mu.Unlock()
	b.record(journal.Event{Username: cur.Username, Kind: journal.KindSolved, Detail: sol.Topic})

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Flag as incorrect", flagCmd),
		),
	)
	msgOut := tgbotapi.NewMessage(chatID, renderSolution(sol))
	msgOut.ReplyMarkup = kb
	if _, err := b.s.Send(msgOut); err != nil {
		log.Printf("failed to send solution: %v", err)
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Data != flagCmd || cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	b.mu.Lock()
	last, ok := b.lastAsked[chatID]
	delete(b.lastAsked, chatID)
	b.mu.Unlock()
	if !ok {
		return
	}

	fb := b.feedbacks.Record(last.question, last.solution)
	b.sendMessage(chatID, fmt.Sprintf("Thanks, the solution was sent for review (id %s).", fb.ID))
}

// adminOnly runs fn only when the active session belongs to an administrator.
func (b *Bot) adminOnly(chatID int64, fn func()) {
	cur, ok := b.sessions.Current()
	if !ok || cur.Role != account.RoleAdmin {
		b.sendMessage(chatID, "This command requires an administrator session.")
		return
	}
	fn()
}

func (b *Bot) setActiveChat(chatID int64) {
	b.mu.Lock()
	b.activeChat = chatID
	b.mu.Unlock()
}

func splitCommand(text string) (cmd, arg string) {
	parts := strings.SplitN(text, " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) == 2 {
		arg = parts[1]
	}
	return cmd, arg
}

func renderSolution(sol solver.Solution) string {
	var sb strings.Builder
	if sol.Topic != "" {
		fmt.Fprintf(&sb, "Topic: %s\n", sol.Topic)
	}
	if sol.Asked != "" {
		fmt.Fprintf(&sb, "Asked: %s\n", sol.Asked)
	}
	if sol.Given != "" {
		fmt.Fprintf(&sb, "Given: %s\n", sol.Given)
	}
	if sol.Steps != "" {
		fmt.Fprintf(&sb, "\nSolution:\n%s\n", sol.Steps)
	}
	if sol.Result != "" {
		fmt.Fprintf(&sb, "\nResult: %s\n", sol.Result)
	}
	if sol.TopicSummary != "" {
		fmt.Fprintf(&sb, "\n%s", sol.TopicSummary)
	}
	return sb.String()
}

func formatDuration(seconds int) string {
	minutes := seconds / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// errText maps core errors onto user-facing messages.
func errText(err error) string {
	switch {
	case errors.Is(err, session.ErrNotRegistered):
		return "No account found. Please /register first."
	case errors.Is(err, session.ErrBanned):
		return "Access to this account has been blocked."
	case errors.Is(err, session.ErrStaleSession):
		return "Your saved session is no longer valid. Please sign in again."
	case errors.Is(err, session.ErrViewDenied):
		return "That view is not available right now."
	case errors.Is(err, account.ErrAlreadyExists):
		return "That username is already taken."
	case errors.Is(err, account.ErrNotFound):
		return "No account with that name."
	case errors.Is(err, feedback.ErrNotFound):
		return "No feedback with that id."
	case errors.Is(err, account.ErrInvalidLimit), errors.Is(err, settings.ErrInvalidLimit):
		return "The limit must be a positive number of minutes."
	default:
		return "Sorry, something went wrong."
	}
}
