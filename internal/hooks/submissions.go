package hooks

import (
	"context"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/query"
	"github.com/ignatzorin/hvacsite/internal/service"
)

type ContactAdapter interface {
	Submit(ctx context.Context, req dto.ContactRequest) (*dto.ContactMessage, error)
	List(ctx context.Context, f dto.SubmissionFilters) (dto.ListResult[dto.ContactMessage], error)
}

type QuoteAdapter interface {
	Submit(ctx context.Context, req dto.QuoteRequestInput) (*dto.QuoteRequest, error)
	List(ctx context.Context, f dto.SubmissionFilters) (dto.ListResult[dto.QuoteRequest], error)
}

type ApplicationAdapter interface {
	Submit(ctx context.Context, req dto.ApplicationRequest, resume *dto.FileUpload) (*dto.JobApplication, error)
	List(ctx context.Context, f dto.SubmissionFilters) (dto.ListResult[dto.JobApplication], error)
}

// ApplicationPayload отклик вместе с необязательным файлом резюме.
type ApplicationPayload struct {
	Request dto.ApplicationRequest
	Resume  *dto.FileUpload
}

// Submissions мутации форм и списки заявок для администратора.
type Submissions struct {
	client       *query.Client
	contact      ContactAdapter
	quotes       QuoteAdapter
	applications ApplicationAdapter
}

func NewSubmissions(c *query.Client, contact ContactAdapter, quotes QuoteAdapter, applications ApplicationAdapter) *Submissions {
	return &Submissions{client: c, contact: contact, quotes: quotes, applications: applications}
}

// SubmitContact создаёт мутацию с корнем contact-messages.
func (h *Submissions) SubmitContact(opts ...query.MutationOption[dto.ContactRequest, *dto.ContactMessage]) *query.Mutation[dto.ContactRequest, *dto.ContactMessage] {
	return query.NewMutation(h.client, RootContactMessages, h.contact.Submit, opts...)
}

func (h *Submissions) SubmitQuote(opts ...query.MutationOption[dto.QuoteRequestInput, *dto.QuoteRequest]) *query.Mutation[dto.QuoteRequestInput, *dto.QuoteRequest] {
	return query.NewMutation(h.client, RootQuotes, h.quotes.Submit, opts...)
}

func (h *Submissions) SubmitApplication(opts ...query.MutationOption[ApplicationPayload, *dto.JobApplication]) *query.Mutation[ApplicationPayload, *dto.JobApplication] {
	return query.NewMutation(h.client, RootApplications, func(ctx context.Context, p ApplicationPayload) (*dto.JobApplication, error) {
		return h.applications.Submit(ctx, p.Request, p.Resume)
	}, opts...)
}

func (h *Submissions) ContactMessages(ctx context.Context, f dto.SubmissionFilters) query.Result[dto.ListResult[dto.ContactMessage]] {
	f = f.Normalize()
	return query.Fetch(ctx, h.client, ContactMessageKeys.List(f), func(ctx context.Context) (dto.ListResult[dto.ContactMessage], error) {
		return h.contact.List(ctx, f)
	})
}

func (h *Submissions) Quotes(ctx context.Context, f dto.SubmissionFilters) query.Result[dto.ListResult[dto.QuoteRequest]] {
	f = f.Normalize()
	return query.Fetch(ctx, h.client, QuoteKeys.List(f), func(ctx context.Context) (dto.ListResult[dto.QuoteRequest], error) {
		return h.quotes.List(ctx, f)
	})
}

func (h *Submissions) Applications(ctx context.Context, f dto.SubmissionFilters) query.Result[dto.ListResult[dto.JobApplication]] {
	f = f.Normalize()
	return query.Fetch(ctx, h.client, ApplicationKeys.List(f), func(ctx context.Context) (dto.ListResult[dto.JobApplication], error) {
		return h.applications.List(ctx, f)
	})
}

// RootForKind возвращает корень кэша для вида заявки.
func RootForKind(kind string) string {
	switch kind {
	case service.KindContact:
		return RootContactMessages
	case service.KindQuote:
		return RootQuotes
	case service.KindApplication:
		return RootApplications
	default:
		return ""
	}
}

// Invalidator сбрасывает кэш при заявках, созданных в обход мутаций (прямые POST).
type Invalidator struct {
	client *query.Client
}

func NewInvalidator(c *query.Client) *Invalidator {
	return &Invalidator{client: c}
}

func (i *Invalidator) PublishSubmission(evt service.SubmissionEvent) {
	if root := RootForKind(evt.Kind); root != "" {
		i.client.Invalidate(root)
	}
}
