package responses

import (
	"time"

	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/domain/prompt"
	"hr-assistant-api/internal/domain/user"
)

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Msg string `json:"msg"`
}

type UserPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

type UserResponse struct {
	User UserPayload `json:"user"`
}

type MessagePayload struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type DialogPayload struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Chat      []MessagePayload `json:"chat"`
	CreatedAt time.Time        `json:"created_at"`
	LastMsg   time.Time        `json:"last_msg"`
	ChatColor string           `json:"chat_color"`
	Version   int64            `json:"version"`
}

type DialogResponse struct {
	Dialog DialogPayload `json:"dialog"`
}

type DialogSummaryPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	LastMsg   time.Time `json:"last_msg"`
	ChatColor string    `json:"chat_color"`
}

type DialogListResponse struct {
	Dialogs []DialogSummaryPayload `json:"dialogs"`
}

type DeleteDialogsResponse struct {
	Msg     string `json:"msg"`
	Deleted int64  `json:"deleted"`
}

type PromptPayload struct {
	ID      string `json:"id"`
	Key     string `json:"key"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PromptListResponse struct {
	Prompts []PromptPayload `json:"prompts"`
}

func NewUserPayload(u *user.User) UserPayload {
	return UserPayload{ID: u.ID, Name: u.Name, Username: u.Username, CreatedAt: u.CreatedAt}
}

func NewDialogPayload(s *dialog.Session) DialogPayload {
	chat := make([]MessagePayload, 0, len(s.Chat))
	for _, m := range s.Chat {
		chat = append(chat, MessagePayload{Role: string(m.Role), Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return DialogPayload{
		ID:        s.ID,
		UserID:    s.UserID,
		Title:     s.Title,
		Chat:      chat,
		CreatedAt: s.CreatedAt,
		LastMsg:   s.LastMsg,
		ChatColor: s.ChatColor,
		Version:   s.Version,
	}
}

// NewDialogListResponse never produces a null list.
func NewDialogListResponse(summaries []dialog.Summary) DialogListResponse {
	out := make([]DialogSummaryPayload, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, DialogSummaryPayload{ID: s.ID, Title: s.Title, LastMsg: s.LastMsg, ChatColor: s.ChatColor})
	}
	return DialogListResponse{Dialogs: out}
}

func NewPromptListResponse(prompts []prompt.Prompt) PromptListResponse {
	out := make([]PromptPayload, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, PromptPayload{ID: p.ID, Key: p.Key, Title: p.Title, Content: p.Content})
	}
	return PromptListResponse{Prompts: out}
}
