package service

import (
	"github.com/rs/zerolog"

	"github.com/studyoverflow/gateway/internal/core/ports"
)

// Factory builds request-scoped hook services over the shared upstream
// clients. Handlers take the factory and construct the hooks they need per
// request, so loading/error state never leaks between requests.
type Factory struct {
	auth      ports.AuthAPI
	questions ports.QuestionAPI
	answers   ports.AnswerAPI
	votes     ports.VoteAPI
	favorites ports.FavoriteAPI
	reports   ports.ReportAPI
	taxonomy  ports.TaxonomyAPI
	admin     ports.AdminAPI
	tokens    ports.TokenStore
	log       zerolog.Logger
}

// FactoryDeps names the Factory's collaborators.
type FactoryDeps struct {
	Auth      ports.AuthAPI
	Questions ports.QuestionAPI
	Answers   ports.AnswerAPI
	Votes     ports.VoteAPI
	Favorites ports.FavoriteAPI
	Reports   ports.ReportAPI
	Taxonomy  ports.TaxonomyAPI
	Admin     ports.AdminAPI
	Tokens    ports.TokenStore
	Log       zerolog.Logger
}

func NewFactory(deps FactoryDeps) *Factory {
	return &Factory{
		auth:      deps.Auth,
		questions: deps.Questions,
		answers:   deps.Answers,
		votes:     deps.Votes,
		favorites: deps.Favorites,
		reports:   deps.Reports,
		taxonomy:  deps.Taxonomy,
		admin:     deps.Admin,
		tokens:    deps.Tokens,
		log:       deps.Log,
	}
}

func (f *Factory) Auth() *AuthService           { return NewAuthService(f.auth, f.tokens, f.log) }
func (f *Factory) Questions() *QuestionsService { return NewQuestionsService(f.questions) }
func (f *Factory) Answers() *AnswersService     { return NewAnswersService(f.answers) }
func (f *Factory) Voting() *VotingService       { return NewVotingService(f.votes) }
func (f *Factory) Favorites() *FavoritesService { return NewFavoritesService(f.favorites) }
func (f *Factory) Reports() *ReportsService     { return NewReportsService(f.reports) }
func (f *Factory) Taxonomy() *TaxonomyService   { return NewTaxonomyService(f.taxonomy) }
func (f *Factory) Admin() *AdminService         { return NewAdminService(f.admin) }
