package handlers

import (
	"bufio"
	goContext "context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/apex-leadership/apex_api/dto"
	"github.com/apex-leadership/apex_api/model"
	"github.com/apex-leadership/apex_api/shared"
)

type ChatHandler struct {
	chatSvc ChatServiceInterface
}

func NewChatHandler(chatSvc ChatServiceInterface) *ChatHandler {
	return &ChatHandler{
		chatSvc: chatSvc,
	}
}

// @Summary Send a message to the owner
// @Tags chat
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param messageRequest body dto.SendMessageRequest true "Message"
// @Success 201 {object} shared.Response{data=dto.MessageResponse}
// @Router /api/v1/chat/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	var resp *dto.MessageResponse
	var err error

	// The owner replies to a member; members always reach the owner.
	if recipientID := c.Query("to"); recipientID != "" && c.Locals(shared.UserRole) == model.RoleOwner {
		resp, err = h.chatSvc.SendMessage(userID, recipientID, req)
	} else {
		resp, err = h.chatSvc.SendToOwner(userID, req)
	}
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Message sent", resp)
}

// @Summary Get conversation history
// @Description Full history with the owner; the owner passes ?with= to pick the member
// @Tags chat
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param with query string false "Member ID (owner only)"
// @Success 200 {object} shared.Response{data=dto.ConversationResponse}
// @Router /api/v1/chat/messages [get]
func (h *ChatHandler) GetConversation(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.chatSvc.GetConversation(userID, c.Query("with"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Stream incoming messages
// @Description Server-sent event stream of messages addressed to the caller
// @Tags chat
// @Produce text/event-stream
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Router /api/v1/chat/stream [get]
func (h *ChatHandler) Stream(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	ctx, cancel := goContext.WithCancel(goContext.Background())
	sub, err := h.chatSvc.Subscribe(ctx, userID)
	if err != nil {
		cancel()
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer sub.Close()

		messages := sub.Channel()
		keepAlive := time.NewTicker(25 * time.Second)
		defer keepAlive.Stop()

		for {
			select {
			case msg, ok := <-messages:
				if !ok {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepAlive.C:
				// Comment line keeps intermediaries from closing the stream.
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
