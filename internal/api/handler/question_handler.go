package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/service"
	"github.com/studyoverflow/gateway/internal/notify"
)

// QuestionHandler serves the question listing, detail, ask and answer flows.
type QuestionHandler struct {
	hooks *service.Factory
	bus   *notify.Bus
}

func NewQuestionHandler(hooks *service.Factory, bus *notify.Bus) *QuestionHandler {
	return &QuestionHandler{hooks: hooks, bus: bus}
}

type askForm struct {
	Title      string  `form:"title" validate:"required,min=10"`
	Content    string  `form:"content" validate:"required,min=20"`
	CategoryID int64   `form:"category_id" validate:"required,gt=0"`
	Tags       []int64 `form:"tags"`
}

type answerForm struct {
	Content string `form:"content" validate:"required,min=10"`
}

// Home lists questions, honouring category/tag/sort/page query filters.
func (h *QuestionHandler) Home(c echo.Context) error {
	filters := listFilters(c)

	data := pageData(c, h.bus, "Latest questions")
	questions := h.hooks.Questions()
	page, ok := questions.List(c.Request().Context(), filters)
	if !ok {
		// Primary content failed to load: full-page error state with retry.
		data["LoadError"] = questions.Err()
		data["RetryURL"] = c.Request().URL.String()
		return c.Render(http.StatusOK, "home", data)
	}

	data["Questions"] = page.Data
	data["Meta"] = page.Meta
	return c.Render(http.StatusOK, "home", data)
}

// Detail renders one question with its answers, plus the viewer's favorite
// state when logged in.
func (h *QuestionHandler) Detail(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	data := pageData(c, h.bus, "Question")
	questions := h.hooks.Questions()
	question, ok := questions.Get(c.Request().Context(), id)
	if !ok {
		data["LoadError"] = questions.Err()
		data["RetryURL"] = c.Request().URL.String()
		return c.Render(http.StatusOK, "question", data)
	}

	data["Title"] = question.Title
	data["Question"] = question
	if user := currentUser(c); user != nil {
		// Fail-safe: a broken favorite indicator never blocks the page.
		data["IsFavorite"] = h.hooks.Favorites().Check(c.Request().Context(), id)
		data["CanModerate"] = canMarkBest(user, question)
	}
	return c.Render(http.StatusOK, "question", data)
}

// canMarkBest: the question's author picks the best answer; staff may too.
func canMarkBest(user *domain.User, q *domain.Question) bool {
	if user.IsStaff() {
		return true
	}
	return q.User != nil && q.User.ID == user.ID
}

// AskPage renders the ask form with the category/tag options.
func (h *QuestionHandler) AskPage(c echo.Context) error {
	data := pageData(c, h.bus, "Ask a question")
	h.fillTaxonomy(c, data)
	return c.Render(http.StatusOK, "ask", data)
}

// Ask publishes a new question, forwarding any uploaded attachments.
func (h *QuestionHandler) Ask(c echo.Context) error {
	var form askForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	data := pageData(c, h.bus, "Ask a question")
	data["FormTitle"] = form.Title
	data["FormContent"] = form.Content

	if err := c.Validate(&form); err != nil {
		h.fillTaxonomy(c, data)
		data["Error"] = err.Error()
		return c.Render(http.StatusUnprocessableEntity, "ask", data)
	}

	input := ports.CreateQuestionInput{
		Title:      form.Title,
		Content:    form.Content,
		CategoryID: form.CategoryID,
		TagIDs:     form.Tags,
	}
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for _, fh := range mf.File["attachments"] {
			f, err := fh.Open()
			if err != nil {
				continue
			}
			defer f.Close()
			input.Attachments = append(input.Attachments, ports.Attachment{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Reader:      f,
			})
		}
	}

	questions := h.hooks.Questions()
	question, ok := questions.Create(c.Request().Context(), input)
	if !ok {
		h.fillTaxonomy(c, data)
		data["Error"] = questions.Err()
		return c.Render(http.StatusUnprocessableEntity, "ask", data)
	}

	h.bus.Show(sessionID(c), "question published", ports.ToastSuccess, 0)
	return c.Redirect(http.StatusSeeOther, "/questions/"+strconv.FormatInt(question.ID, 10))
}

// Answer posts an answer to a question and returns to its page.
func (h *QuestionHandler) Answer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var form answerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	back := "/questions/" + strconv.FormatInt(id, 10)

	if err := c.Validate(&form); err != nil {
		h.bus.Show(sessionID(c), err.Error(), ports.ToastError, 0)
		return c.Redirect(http.StatusSeeOther, back)
	}

	answers := h.hooks.Answers()
	if _, ok := answers.Create(c.Request().Context(), ports.CreateAnswerInput{QuestionID: id, Content: form.Content}); !ok {
		if msg := answers.Err(); msg != "" {
			h.bus.Show(sessionID(c), msg, ports.ToastError, 0)
		}
		return c.Redirect(http.StatusSeeOther, back)
	}

	h.bus.Show(sessionID(c), "answer posted", ports.ToastSuccess, 0)
	return c.Redirect(http.StatusSeeOther, back)
}

// MarkBest flags an answer as accepted and returns to the question.
func (h *QuestionHandler) MarkBest(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	answers := h.hooks.Answers()
	if answers.MarkAsBest(c.Request().Context(), id) {
		h.bus.Show(sessionID(c), "answer marked as best", ports.ToastSuccess, 0)
	} else if msg := answers.Err(); msg != "" {
		h.bus.Show(sessionID(c), msg, ports.ToastError, 0)
	}

	if back := c.Request().Referer(); back != "" {
		return c.Redirect(http.StatusSeeOther, back)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Categories lists the public categories.
func (h *QuestionHandler) Categories(c echo.Context) error {
	data := pageData(c, h.bus, "Categories")
	taxonomy := h.hooks.Taxonomy()
	cats, ok := taxonomy.Categories(c.Request().Context())
	if !ok {
		data["LoadError"] = taxonomy.Err()
		return c.Render(http.StatusOK, "categories", data)
	}
	data["Categories"] = cats
	return c.Render(http.StatusOK, "categories", data)
}

// Search runs a question search for the q parameter.
func (h *QuestionHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	data := pageData(c, h.bus, "Search")
	data["Query"] = query
	if query == "" {
		return c.Render(http.StatusOK, "search", data)
	}

	questions := h.hooks.Questions()
	page, ok := questions.List(c.Request().Context(), domain.QuestionFilters{Search: query})
	if !ok {
		data["LoadError"] = questions.Err()
		return c.Render(http.StatusOK, "search", data)
	}
	data["Questions"] = page.Data
	return c.Render(http.StatusOK, "search", data)
}

func (h *QuestionHandler) fillTaxonomy(c echo.Context, data map[string]any) {
	taxonomy := h.hooks.Taxonomy()
	if cats, ok := taxonomy.Categories(c.Request().Context()); ok {
		data["Categories"] = cats
	}
	if tags, ok := taxonomy.Tags(c.Request().Context()); ok {
		data["Tags"] = tags
	}
}

func listFilters(c echo.Context) domain.QuestionFilters {
	f := domain.QuestionFilters{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
	}
	if v, err := strconv.ParseInt(c.QueryParam("category_id"), 10, 64); err == nil {
		f.CategoryID = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("tag_id"), 10, 64); err == nil {
		f.TagID = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		f.Page = v
	}
	return f
}
