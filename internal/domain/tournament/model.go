package tournament

import (
	"fmt"
	"strings"
)

// Source selects which upstream host pair is queried.
type Source string

const (
	SourceSofascore Source = "sofascore"
	SourceSofavpn   Source = "sofavpn"
)

func ParseSource(raw string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(raw))) {
	case SourceSofascore:
		return SourceSofascore, nil
	case SourceSofavpn:
		return SourceSofavpn, nil
	default:
		return "", fmt.Errorf("invalid data source %q: valid values are %s, %s", raw, SourceSofascore, SourceSofavpn)
	}
}

func (s Source) Valid() bool {
	return s == SourceSofascore || s == SourceSofavpn
}

// Type selects the round listing pattern. The zero value is the default
// round-robin listing.
type Type string

const (
	TypeDefault Type = ""
	TypeUEFA    Type = "uefa"
)

func ParseType(raw string) (Type, error) {
	switch value := strings.ToLower(strings.TrimSpace(raw)); value {
	case "", "default":
		return TypeDefault, nil
	case string(TypeUEFA):
		return TypeUEFA, nil
	default:
		return "", fmt.Errorf("invalid tournament type %q: valid values are default, %s", raw, TypeUEFA)
	}
}

// Stage names one knockout or qualification slate of a UEFA competition.
type Stage string

const (
	StageNone                 Stage = ""
	StagePreliminarySemifinal Stage = "preliminary_semifinals"
	StagePreliminaryFinal     Stage = "preliminary_final"
	StageQualificationRound   Stage = "qualification_round"
	StageQualificationPlayoff Stage = "qualification_playoff"
	StageGroupStageWeek       Stage = "group_stage_week"
	StagePlayoffRound         Stage = "playoff_round"
	StageRoundOf16            Stage = "round_of_16"
	StageQuarterfinals        Stage = "quarterfinals"
	StageSemifinals           Stage = "semifinals"
	StageMatchForThirdPlace   Stage = "match_for_3rd_place"
	StageFinal                Stage = "final"
)

// Stages lists every known UEFA stage in competition order.
func Stages() []Stage {
	return []Stage{
		StagePreliminarySemifinal,
		StagePreliminaryFinal,
		StageQualificationRound,
		StageQualificationPlayoff,
		StageGroupStageWeek,
		StagePlayoffRound,
		StageRoundOf16,
		StageQuarterfinals,
		StageSemifinals,
		StageMatchForThirdPlace,
		StageFinal,
	}
}

func ParseStage(raw string) (Stage, error) {
	value := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if value == StageNone {
		return StageNone, nil
	}
	for _, stage := range Stages() {
		if stage == value {
			return stage, nil
		}
	}
	return "", fmt.Errorf("invalid tournament stage %q", raw)
}

// RoundQuery identifies one round (week) of a tournament season.
type RoundQuery struct {
	TournamentID int64
	SeasonID     int64
	Week         int
	Type         Type
	Stage        Stage
}

// SeasonQuery identifies a tournament season.
type SeasonQuery struct {
	TournamentID int64
	SeasonID     int64
}

func (q SeasonQuery) Validate() error {
	if q.TournamentID <= 0 {
		return fmt.Errorf("tournament id must be greater than zero")
	}
	if q.SeasonID <= 0 {
		return fmt.Errorf("season id must be greater than zero")
	}
	return nil
}

func (q RoundQuery) Season() SeasonQuery {
	return SeasonQuery{TournamentID: q.TournamentID, SeasonID: q.SeasonID}
}

func (q RoundQuery) Validate() error {
	if err := q.Season().Validate(); err != nil {
		return err
	}
	if q.Week <= 0 {
		return fmt.Errorf("week number is required")
	}
	switch q.Type {
	case TypeDefault:
		if q.Stage != StageNone {
			return fmt.Errorf("tournament stage %q requires a tournament type", q.Stage)
		}
	case TypeUEFA:
		if q.Stage == StageNone {
			return fmt.Errorf("tournament stage is required for tournament type %q", q.Type)
		}
		if _, err := ParseStage(string(q.Stage)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid tournament type %q", q.Type)
	}
	return nil
}
