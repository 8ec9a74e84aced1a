package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/extraction"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/imaging"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/pricing"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/usecase/interfaces"
)

var (
	ErrEstimateNotFound  = errors.New("estimate not found")
	ErrInvalidEstimateID = errors.New("invalid estimate id")
	ErrInvalidLocation   = errors.New("invalid location type")
	ErrInvalidBoothSize  = errors.New("invalid booth size")
	ErrInvalidStatus     = errors.New("invalid estimate status")
	ErrInvalidTier       = errors.New("invalid tier key")
	ErrNoQuestions       = errors.New("estimate has no clarifying questions to answer")
	ErrEmptyResponse     = errors.New("generator returned an empty response")
)

// generationMaxTokens is the output budget per generator call. Three full
// tiers with line items routinely run several thousand tokens.
const generationMaxTokens = 8000

// CreateEstimateParams is the input of a first-pass estimate: the booth
// context plus up to imaging.MaxBatchSize raw render files.
type CreateEstimateParams struct {
	Location      entities.LocationType
	BoothSizeKey  string
	SquareFootage *int
	Images        []imaging.RawImage
	ClientName    string
	ProjectName   string
}

// EstimateDetails carries the optional metadata edits of an estimate. Nil
// fields are left untouched.
type EstimateDetails struct {
	ClientName   *string
	ProjectName  *string
	QuoteNumber  *string
	SelectedTier *entities.TierKey
}

// IEstimateUseCase exposes the estimate pipeline and every per-document
// operation the dashboard offers.

type IEstimateUseCase interface {
	CreateEstimate(ctx context.Context, params CreateEstimateParams) (entities.EstimateDocument, []imaging.FileError, error)
	Refine(ctx context.Context, id string, answers map[string]string) (entities.EstimateDocument, error)
	AddLineItem(ctx context.Context, id string, tier entities.TierKey, item entities.FabricationItem) (entities.EstimateDocument, error)
	UpdateLineItem(ctx context.Context, id string, tier entities.TierKey, index int, item entities.FabricationItem) (entities.EstimateDocument, error)
	DeleteLineItem(ctx context.Context, id string, tier entities.TierKey, index int) (entities.EstimateDocument, error)
	UpdateLogistics(ctx context.Context, id string, tier entities.TierKey, category entities.LogisticsCategory, amount float64) (entities.EstimateDocument, error)
	UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus) (entities.EstimateDocument, error)
	UpdateDetails(ctx context.Context, id string, details EstimateDetails) (entities.EstimateDocument, error)
	ExportTier(ctx context.Context, id string, tier string) (entities.EstimateDocument, entities.TierKey, error)
	GetByID(ctx context.Context, id string) (entities.EstimateDocument, error)
	List(ctx context.Context) ([]entities.EstimateDocument, error)
	Delete(ctx context.Context, id string) error
}

type EstimateUseCase struct {
	repo       interfaces.IEstimateRepository
	generator  interfaces.IGeneratorGateway
	normalizer *imaging.Normalizer
	now        func() time.Time
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, generator interfaces.IGeneratorGateway) *EstimateUseCase {
	return &EstimateUseCase{
		repo:       repo,
		generator:  generator,
		normalizer: imaging.NewNormalizer(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// newQuoteNumber produces a human-quotable reference like DCE-52417.
func newQuoteNumber() string {
	return fmt.Sprintf("DCE-%d", 50000+rand.IntN(5000))
}

// CreateEstimate runs the full pipeline: normalize renders, brief the
// generator, extract and validate the result, re-derive every total and
// persist the document. Individual bad renders are dropped and reported in
// the second return value; the pipeline fails only when the generator or
// extraction fails.
func (u *EstimateUseCase) CreateEstimate(ctx context.Context, params CreateEstimateParams) (entities.EstimateDocument, []imaging.FileError, error) {
	if !params.Location.IsValid() {
		return entities.EstimateDocument{}, nil, fmt.Errorf("%w: %q", ErrInvalidLocation, params.Location)
	}
	size, ok := BoothSizes[params.BoothSizeKey]
	if !ok {
		return entities.EstimateDocument{}, nil, fmt.Errorf("%w: %q (expected one of %s)",
			ErrInvalidBoothSize, params.BoothSizeKey, strings.Join(SortedBoothSizeKeys(), ", "))
	}

	req := entities.BoothRequest{
		LocationType: params.Location,
		BoothSizeKey: params.BoothSizeKey,
	}
	if size.SquareFootage != nil {
		req.SquareFootage = size.SquareFootage
	} else {
		req.SquareFootage = params.SquareFootage
	}

	attachments, fileErrors := u.normalizer.NormalizeAll(ctx, params.Images)

	result, err := u.generate(ctx, buildSystemPrompt(req), buildCreateContent(req, attachments))
	if err != nil {
		return entities.EstimateDocument{}, fileErrors, err
	}

	now := u.now()
	doc := entities.EstimateDocument{
		ID:                  uuid.NewString(),
		Request:             req,
		Images:              attachments,
		Analysis:            result.Analysis,
		ClarifyingQuestions: result.ClarifyingQuestions,
		Tiers:               result.Estimates,
		TimeEstimate:        result.TimeEstimate,
		Status:              entities.EstimateStatusDraft,
		ClientName:          strings.TrimSpace(params.ClientName),
		ProjectName:         strings.TrimSpace(params.ProjectName),
		QuoteNumber:         newQuoteNumber(),
		SelectedTier:        entities.TierMidTier,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	saved, err := u.repo.Put(ctx, doc)
	if err != nil {
		return entities.EstimateDocument{}, fileErrors, err
	}
	return saved, fileErrors, nil
}

// Refine re-runs the generator with the stored renders plus the answered
// clarifying questions, then replaces analysis, questions, tiers and the
// schedule in one step. Identity, request context, renders and created_at
// survive. Any failure leaves the stored document exactly as it was.
func (u *EstimateUseCase) Refine(ctx context.Context, id string, answers map[string]string) (entities.EstimateDocument, error) {
	doc, err := u.getExisting(ctx, id)
	if err != nil {
		return entities.EstimateDocument{}, err
	}
	if len(doc.ClarifyingQuestions) == 0 {
		return entities.EstimateDocument{}, ErrNoQuestions
	}

	result, err := u.generate(ctx, buildSystemPrompt(doc.Request), buildRefineContent(doc, answers))
	if err != nil {
		return entities.EstimateDocument{}, err
	}

	next := pricing.CloneDocument(doc)
	next.Analysis = result.Analysis
	next.ClarifyingQuestions = result.ClarifyingQuestions
	next.Tiers = result.Estimates
	next.TimeEstimate = result.TimeEstimate
	next.Status = entities.EstimateStatusRevised
	next.UpdatedAt = u.now()

	return u.repo.Put(ctx, next)
}

// generate is the shared generator round trip: call, extract, validate,
// normalize totals.
func (u *EstimateUseCase) generate(ctx context.Context, system string, content []interfaces.ContentBlock) (entities.GeneratedResult, error) {
	raw, err := u.generator.Generate(ctx, interfaces.GenerationRequest{
		System:    system,
		MaxTokens: generationMaxTokens,
		Messages:  []interfaces.GeneratorMessage{{Role: "user", Content: content}},
	})
	if err != nil {
		return entities.GeneratedResult{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return entities.GeneratedResult{}, ErrEmptyResponse
	}

	result, err := extraction.Extract(raw)
	if err != nil {
		return entities.GeneratedResult{}, err
	}
	if err := pricing.ValidateResult(result); err != nil {
		return entities.GeneratedResult{}, err
	}
	return pricing.NormalizeResult(result), nil
}

func (u *EstimateUseCase) AddLineItem(ctx context.Context, id string, tier entities.TierKey, item entities.FabricationItem) (entities.EstimateDocument, error) {
	return u.edit(ctx, id, func(doc entities.EstimateDocument) (entities.EstimateDocument, error) {
		return pricing.AddLineItem(doc, tier, item)
	})
}

func (u *EstimateUseCase) UpdateLineItem(ctx context.Context, id string, tier entities.TierKey, index int, item entities.FabricationItem) (entities.EstimateDocument, error) {
	return u.edit(ctx, id, func(doc entities.EstimateDocument) (entities.EstimateDocument, error) {
		return pricing.UpdateLineItem(doc, tier, index, item)
	})
}

func (u *EstimateUseCase) DeleteLineItem(ctx context.Context, id string, tier entities.TierKey, index int) (entities.EstimateDocument, error) {
	return u.edit(ctx, id, func(doc entities.EstimateDocument) (entities.EstimateDocument, error) {
		return pricing.DeleteLineItem(doc, tier, index)
	})
}

func (u *EstimateUseCase) UpdateLogistics(ctx context.Context, id string, tier entities.TierKey, category entities.LogisticsCategory, amount float64) (entities.EstimateDocument, error) {
	return u.edit(ctx, id, func(doc entities.EstimateDocument) (entities.EstimateDocument, error) {
		return pricing.SetLogistics(doc, tier, category, amount)
	})
}

func (u *EstimateUseCase) UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus) (entities.EstimateDocument, error) {
	if !status.IsValid() {
		return entities.EstimateDocument{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return u.edit(ctx, id, func(doc entities.EstimateDocument) (entities.EstimateDocument, error) {
		doc.Status = status
		return doc, nil
	})
}

func (u *EstimateUseCase) UpdateDetails(ctx context.Context, id string, details EstimateDetails) (entities.EstimateDocument, error) {
	if details.SelectedTier != nil {
		if _, ok := tierKeySet()[*details.SelectedTier]; !ok {
			return entities.EstimateDocument{}, fmt.Errorf("%w: %q", ErrInvalidTier, *details.SelectedTier)
		}
	}
	return u.edit(ctx, id, func(doc entities.EstimateDocument) (entities.EstimateDocument, error) {
		if details.ClientName != nil {
			doc.ClientName = strings.TrimSpace(*details.ClientName)
		}
		if details.ProjectName != nil {
			doc.ProjectName = strings.TrimSpace(*details.ProjectName)
		}
		if details.QuoteNumber != nil {
			doc.QuoteNumber = strings.TrimSpace(*details.QuoteNumber)
		}
		if details.SelectedTier != nil {
			doc.SelectedTier = *details.SelectedTier
		}
		return doc, nil
	})
}

// ExportTier resolves the document and tier a client-facing quote should be
// rendered from. An empty tier argument falls back to the document's
// selected tier.
func (u *EstimateUseCase) ExportTier(ctx context.Context, id string, tier string) (entities.EstimateDocument, entities.TierKey, error) {
	doc, err := u.getExisting(ctx, id)
	if err != nil {
		return entities.EstimateDocument{}, "", err
	}

	key := doc.SelectedTier
	if strings.TrimSpace(tier) != "" {
		key = entities.TierKey(tier)
	}
	if _, ok := doc.Tiers[key]; !ok {
		return entities.EstimateDocument{}, "", fmt.Errorf("%w: %q", ErrInvalidTier, key)
	}
	return doc, key, nil
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.EstimateDocument, error) {
	return u.getExisting(ctx, id)
}

// List returns every estimate, most recently updated first.
func (u *EstimateUseCase) List(ctx context.Context) ([]entities.EstimateDocument, error) {
	docs, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
	})
	return docs, nil
}

func (u *EstimateUseCase) Delete(ctx context.Context, id string) error {
	if _, err := u.getExisting(ctx, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

// edit is the shared read-modify-write path of every manual mutation: fetch,
// apply, stamp updated_at, persist. fn receives its own copy and errors from
// it abort before anything is written.
func (u *EstimateUseCase) edit(ctx context.Context, id string, fn func(entities.EstimateDocument) (entities.EstimateDocument, error)) (entities.EstimateDocument, error) {
	doc, err := u.getExisting(ctx, id)
	if err != nil {
		return entities.EstimateDocument{}, err
	}

	next, err := fn(pricing.CloneDocument(doc))
	if err != nil {
		return entities.EstimateDocument{}, err
	}
	next.UpdatedAt = u.now()

	return u.repo.Put(ctx, next)
}

func (u *EstimateUseCase) getExisting(ctx context.Context, id string) (entities.EstimateDocument, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.EstimateDocument{}, ErrInvalidEstimateID
	}

	doc, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.EstimateDocument{}, err
	}
	if doc.ID == "" {
		return entities.EstimateDocument{}, ErrEstimateNotFound
	}
	return doc, nil
}

func tierKeySet() map[entities.TierKey]struct{} {
	set := make(map[entities.TierKey]struct{}, len(entities.TierKeys))
	for _, k := range entities.TierKeys {
		set[k] = struct{}{}
	}
	return set
}
