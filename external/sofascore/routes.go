package sofascore

import (
	"fmt"

	"github.com/riskibarqy/fcdata/internal/domain/standing"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

// stageSuffix returns the path appended to a UEFA round listing.
func stageSuffix(stage tournament.Stage, week int) (string, error) {
	switch stage {
	case tournament.StagePreliminarySemifinal:
		return "/slug/semifinals/prefix/Preliminary", nil
	case tournament.StagePreliminaryFinal:
		return "/slug/final/prefix/Preliminary", nil
	case tournament.StageQualificationRound:
		return fmt.Sprintf("/slug/qualification-round-%d", week), nil
	case tournament.StageQualificationPlayoff:
		return "/slug/playoff-round/prefix/Qualification", nil
	case tournament.StageGroupStageWeek:
		return "", nil
	case tournament.StagePlayoffRound:
		return "/slug/playoff-round", nil
	case tournament.StageRoundOf16:
		return "/slug/round-of-16", nil
	case tournament.StageQuarterfinals:
		return "/slug/quarterfinals", nil
	case tournament.StageSemifinals:
		return "/slug/semifinals", nil
	case tournament.StageMatchForThirdPlace:
		return "/slug/match-for-3rd-place", nil
	case tournament.StageFinal:
		return "/slug/final", nil
	default:
		return "", fmt.Errorf("%w: invalid tournament stage %q", usecase.ErrInvalidInput, stage)
	}
}

// RoundURL resolves the listing locator for one round.
func (c *Client) RoundURL(source tournament.Source, query tournament.RoundQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	hosts, err := c.hosts(source)
	if err != nil {
		return "", err
	}

	base := fmt.Sprintf("%s/api/v1/unique-tournament/%d/season/%d/events/round/%d",
		hosts.API, query.TournamentID, query.SeasonID, query.Week)
	if query.Type != tournament.TypeUEFA {
		return base, nil
	}
	suffix, err := stageSuffix(query.Stage, query.Week)
	if err != nil {
		return "", err
	}
	return base + suffix, nil
}

func (c *Client) eventURL(source tournament.Source, gameID jv.Value, resource string) (string, error) {
	hosts, err := c.hosts(source)
	if err != nil {
		return "", err
	}
	id := gameID.Text()
	if id == "" {
		return "", fmt.Errorf("%w: match without game_id", usecase.ErrInvalidInput)
	}
	return fmt.Sprintf("%s/api/v1/event/%s/%s", hosts.API, id, resource), nil
}

func (c *Client) headToHeadURL(source tournament.Source, customID string) (string, error) {
	hosts, err := c.hosts(source)
	if err != nil {
		return "", err
	}
	if customID == "" {
		return "", fmt.Errorf("%w: match without custom id", usecase.ErrInvalidInput)
	}
	return fmt.Sprintf("%s/api/v1/event/%s/h2h/events", hosts.Web, customID), nil
}

func (c *Client) standingsURL(source tournament.Source, query tournament.SeasonQuery, category standing.Category) (string, error) {
	if err := query.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	if _, err := standing.ParseCategory(string(category)); err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	hosts, err := c.hosts(source)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/v1/unique-tournament/%d/season/%d/standings/%s",
		hosts.API, query.TournamentID, query.SeasonID, category), nil
}

func (c *Client) squadURL(source tournament.Source, team standing.TeamRef) (string, error) {
	hosts, err := c.hosts(source)
	if err != nil {
		return "", err
	}
	id, err := teamID(team)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/v1/team/%s/players", hosts.API, id), nil
}

// teamSeasonURL builds the web-host locator for a team's season resource,
// e.g. "statistics/overall" or "top-players/overall".
func (c *Client) teamSeasonURL(source tournament.Source, query tournament.SeasonQuery, team standing.TeamRef, resource string) (string, error) {
	if err := query.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	hosts, err := c.hosts(source)
	if err != nil {
		return "", err
	}
	id, err := teamID(team)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/v1/team/%s/unique-tournament/%d/season/%d/%s",
		hosts.Web, id, query.TournamentID, query.SeasonID, resource), nil
}

func teamID(team standing.TeamRef) (string, error) {
	id := team.TeamID.Text()
	if id == "" {
		return "", fmt.Errorf("%w: team without team_id", usecase.ErrInvalidInput)
	}
	return id, nil
}
