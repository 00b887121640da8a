package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-talentmatch-backend/internal/domain"
	"go-talentmatch-backend/pkg/apperror"
	"go-talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobseekerUsecase struct {
	jobseekerRepo    domain.JobSeekerRepository
	validate         *validator.Validate
	minSummaryLength int
}

func NewJobSeekerUsecase(repo domain.JobSeekerRepository, validate *validator.Validate, minSummaryLength int) domain.JobSeekerUsecase {
	return &jobseekerUsecase{
		jobseekerRepo:    repo,
		validate:         validate,
		minSummaryLength: minSummaryLength,
	}
}

func (uc *jobseekerUsecase) GetMyProfile(ctx context.Context) (*domain.JobSeekerProfile, error) {
	profile, _, err := uc.ownProfile(ctx)
	return profile, err
}

func (uc *jobseekerUsecase) UpdateMyProfile(ctx context.Context, profile *domain.JobSeekerProfile) (*domain.JobSeekerProfile, error) {
	accountID, err := requireRole(ctx, domain.RoleJobseeker)
	if err != nil {
		return nil, err
	}

	// Force ownership from context
	profile.AccountID = accountID

	if err := uc.validate.Struct(profile); err != nil {
		return nil, apperror.Validation("Profile validation failed", validation.FormatValidationErrors(err))
	}

	existing, err := uc.jobseekerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if existing == nil {
		if err := uc.jobseekerRepo.Create(ctx, profile); err != nil {
			return nil, apperror.Internal(err)
		}
	} else {
		profile.ID = existing.ID
		profile.Status = existing.Status
		cv, err := uc.jobseekerRepo.GetCV(ctx, existing.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		profile.Completeness = uc.completenessScore(profile, cv)
		if err := uc.jobseekerRepo.UpdateDisplay(ctx, profile); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	return uc.jobseekerRepo.GetByAccountID(ctx, accountID)
}

// SetVisibility flips the profile between draft and published. Publishing
// re-validates the completeness policy and reports every violated rule, not
// just the first; hiding always succeeds. The CV's lock state is a pure
// function of the stored status, so both "flags" move as one write.
func (uc *jobseekerUsecase) SetVisibility(ctx context.Context, visible bool) (*domain.JobSeekerProfile, error) {
	profile, _, err := uc.ownProfile(ctx)
	if err != nil {
		return nil, err
	}

	if !visible {
		if err := uc.jobseekerRepo.SetStatus(ctx, profile.ID, domain.ProfileStatusDraft); err != nil {
			return nil, apperror.Internal(err)
		}
		profile.Status = domain.ProfileStatusDraft
		return profile, nil
	}

	cv, err := uc.jobseekerRepo.GetCV(ctx, profile.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if violations := uc.completenessViolations(profile, cv); len(violations) > 0 {
		return nil, apperror.Validation("Profile is not complete enough to publish", violations)
	}

	if err := uc.jobseekerRepo.SetStatus(ctx, profile.ID, domain.ProfileStatusPublished); err != nil {
		return nil, apperror.Internal(err)
	}
	profile.Status = domain.ProfileStatusPublished
	return profile, nil
}

func (uc *jobseekerUsecase) GetMyCV(ctx context.Context) (*domain.CVDocument, error) {
	_, cv, err := uc.ownProfileWithCV(ctx)
	return cv, err
}

func (uc *jobseekerUsecase) WriteSection(ctx context.Context, input domain.SectionInput) (*domain.CVDocument, error) {
	return uc.WriteSections(ctx, []domain.SectionInput{input})
}

// WriteSections performs one logical save: all sections are upserted and the
// CV version is incremented by exactly one, regardless of how many sections
// the save touches.
func (uc *jobseekerUsecase) WriteSections(ctx context.Context, inputs []domain.SectionInput) (*domain.CVDocument, error) {
	profile, cv, err := uc.ownProfileWithCV(ctx)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, apperror.BadRequest("At least one section is required")
	}

	sections := make([]domain.CVSection, 0, len(inputs))
	seen := map[string]bool{}
	for _, input := range inputs {
		if seen[input.Type] {
			return nil, apperror.BadRequest(fmt.Sprintf("Section type %q appears more than once", input.Type))
		}
		seen[input.Type] = true

		content, err := uc.decodeSectionContent(input.Type, input.Content)
		if err != nil {
			return nil, err
		}
		sections = append(sections, domain.CVSection{
			CVID:     cv.ID,
			Type:     input.Type,
			Position: domain.SectionRank[input.Type],
			Content:  content,
		})
	}

	if _, err := uc.jobseekerRepo.WriteSections(ctx, cv.ID, sections); err != nil {
		if err == domain.ErrCVLocked {
			return nil, apperror.Locked("CV cannot be edited while your profile is published")
		}
		return nil, apperror.Internal(err)
	}

	return uc.jobseekerRepo.GetCV(ctx, profile.ID)
}

func (uc *jobseekerUsecase) DeleteSection(ctx context.Context, sectionType string) (*domain.CVDocument, error) {
	profile, cv, err := uc.ownProfileWithCV(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.SectionRank[sectionType]; !ok {
		return nil, apperror.BadRequest(fmt.Sprintf("Unknown section type %q", sectionType))
	}

	if _, err := uc.jobseekerRepo.DeleteSection(ctx, cv.ID, sectionType); err != nil {
		if err == domain.ErrCVLocked {
			return nil, apperror.Locked("CV cannot be edited while your profile is published")
		}
		return nil, apperror.Internal(err)
	}

	return uc.jobseekerRepo.GetCV(ctx, profile.ID)
}

func (uc *jobseekerUsecase) ownProfile(ctx context.Context) (*domain.JobSeekerProfile, string, error) {
	accountID, err := requireRole(ctx, domain.RoleJobseeker)
	if err != nil {
		return nil, "", err
	}
	profile, err := uc.jobseekerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	if profile == nil {
		return nil, "", apperror.NotFound("Jobseeker profile not found")
	}
	return profile, accountID, nil
}

func (uc *jobseekerUsecase) ownProfileWithCV(ctx context.Context) (*domain.JobSeekerProfile, *domain.CVDocument, error) {
	profile, _, err := uc.ownProfile(ctx)
	if err != nil {
		return nil, nil, err
	}
	cv, err := uc.jobseekerRepo.GetCV(ctx, profile.ID)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	if cv == nil {
		return nil, nil, apperror.NotFound("CV not found")
	}
	return profile, cv, nil
}

// decodeSectionContent strictly decodes a payload into the struct for its
// declared type and validates it. The normalized re-marshal is what gets
// stored.
func (uc *jobseekerUsecase) decodeSectionContent(sectionType string, raw json.RawMessage) (json.RawMessage, error) {
	var target any
	switch sectionType {
	case domain.SectionSummary:
		target = &domain.SummaryContent{}
	case domain.SectionExperience:
		target = &domain.ExperienceContent{}
	case domain.SectionEducation:
		target = &domain.EducationContent{}
	case domain.SectionSkills:
		target = &domain.SkillsContent{}
	case domain.SectionLanguages:
		target = &domain.LanguagesContent{}
	case domain.SectionCertifications:
		target = &domain.CertificationsContent{}
	case domain.SectionProjects:
		target = &domain.ProjectsContent{}
	case domain.SectionPublications:
		target = &domain.PublicationsContent{}
	default:
		return nil, apperror.BadRequest(fmt.Sprintf("Unknown section type %q", sectionType))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, apperror.Validation(
			fmt.Sprintf("Invalid %s section payload", sectionType),
			[]string{err.Error()},
		)
	}
	if err := uc.validate.Struct(target); err != nil {
		return nil, apperror.Validation(
			fmt.Sprintf("Invalid %s section payload", sectionType),
			validation.FormatValidationErrors(err),
		)
	}

	normalized, err := json.Marshal(target)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return normalized, nil
}

// completenessViolations evaluates the publish policy and returns every
// violated rule. An empty slice means the profile may go public.
func (uc *jobseekerUsecase) completenessViolations(profile *domain.JobSeekerProfile, cv *domain.CVDocument) []string {
	violations := []string{}

	if len(strings.TrimSpace(profile.Bio)) < uc.minSummaryLength {
		violations = append(violations, fmt.Sprintf("Bio must be at least %d characters", uc.minSummaryLength))
	}

	sections := map[string]json.RawMessage{}
	if cv != nil {
		for _, s := range cv.Sections {
			sections[s.Type] = s.Content
		}
	}

	var skills domain.SkillsContent
	if raw, ok := sections[domain.SectionSkills]; !ok || json.Unmarshal(raw, &skills) != nil || len(skills.Skills) == 0 {
		violations = append(violations, "At least one skill is required")
	}

	var experience domain.ExperienceContent
	if raw, ok := sections[domain.SectionExperience]; !ok || json.Unmarshal(raw, &experience) != nil || len(experience.Entries) == 0 {
		violations = append(violations, "At least one experience entry is required")
	}

	var education domain.EducationContent
	if raw, ok := sections[domain.SectionEducation]; !ok || json.Unmarshal(raw, &education) != nil || len(education.Entries) == 0 {
		violations = append(violations, "At least one education entry is required")
	}

	return violations
}

// completenessScore is a display-only derivation: the share of publish rules
// currently satisfied, as a percentage.
func (uc *jobseekerUsecase) completenessScore(profile *domain.JobSeekerProfile, cv *domain.CVDocument) int {
	const totalRules = 4
	satisfied := totalRules - len(uc.completenessViolations(profile, cv))
	return satisfied * 100 / totalRules
}
