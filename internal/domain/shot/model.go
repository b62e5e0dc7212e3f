package shot

import (
	"github.com/riskibarqy/fcdata/internal/domain/fixture"
	jv "github.com/riskibarqy/fcdata/internal/platform/jsonvalue"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
)

// Point3 is an optional pitch or goal-mouth coordinate. Any axis may be null.
type Point3 struct {
	X jv.Value
	Y jv.Value
	Z jv.Value
}

// Point2 is an optional coordinate on the drawn shot trajectory.
type Point2 struct {
	X jv.Value
	Y jv.Value
}

// Shot is one shot event from a match shotmap.
type Shot struct {
	fixture.Identity
	PlayerName        jv.Value
	PlayerID          jv.Value
	PlayerPosition    jv.Value
	IsHome            jv.Value
	IncidentType      jv.Value
	ShotType          jv.Value
	BodyPart          jv.Value
	GoalType          jv.Value
	Situation         jv.Value
	GoalMouthLocation jv.Value
	XG                jv.Value
	XGOT              jv.Value
	PlayerCoordinates Point3
	GoalMouth         Point3
	DrawStart         Point2
	DrawEnd           Point2
	DrawGoal          Point2
	Block             Point3
	Time              jv.Value
	TimeSeconds       jv.Value
	AddedTime         int64
}

func (s Shot) Row() tabular.Row {
	return append(s.Identity.Cells(),
		tabular.Cell{Column: "player_name", Value: s.PlayerName},
		tabular.Cell{Column: "player_id", Value: s.PlayerID},
		tabular.Cell{Column: "player_position", Value: s.PlayerPosition},
		tabular.Cell{Column: "is_home", Value: s.IsHome},
		tabular.Cell{Column: "incident_type", Value: s.IncidentType},
		tabular.Cell{Column: "shot_type", Value: s.ShotType},
		tabular.Cell{Column: "body_part", Value: s.BodyPart},
		tabular.Cell{Column: "goal_type", Value: s.GoalType},
		tabular.Cell{Column: "situation", Value: s.Situation},
		tabular.Cell{Column: "goal_mouth_location", Value: s.GoalMouthLocation},
		tabular.Cell{Column: "xg", Value: s.XG},
		tabular.Cell{Column: "xgot", Value: s.XGOT},
		tabular.Cell{Column: "player_coordinates_x", Value: s.PlayerCoordinates.X},
		tabular.Cell{Column: "player_coordinates_y", Value: s.PlayerCoordinates.Y},
		tabular.Cell{Column: "player_coordinates_z", Value: s.PlayerCoordinates.Z},
		tabular.Cell{Column: "goal_mouth_coordinates_x", Value: s.GoalMouth.X},
		tabular.Cell{Column: "goal_mouth_coordinates_y", Value: s.GoalMouth.Y},
		tabular.Cell{Column: "goal_mouth_coordinates_z", Value: s.GoalMouth.Z},
		tabular.Cell{Column: "draw_start_x", Value: s.DrawStart.X},
		tabular.Cell{Column: "draw_start_y", Value: s.DrawStart.Y},
		tabular.Cell{Column: "draw_end_x", Value: s.DrawEnd.X},
		tabular.Cell{Column: "draw_end_y", Value: s.DrawEnd.Y},
		tabular.Cell{Column: "draw_goal_x", Value: s.DrawGoal.X},
		tabular.Cell{Column: "draw_goal_y", Value: s.DrawGoal.Y},
		tabular.Cell{Column: "block_coordinates_x", Value: s.Block.X},
		tabular.Cell{Column: "block_coordinates_y", Value: s.Block.Y},
		tabular.Cell{Column: "block_coordinates_z", Value: s.Block.Z},
		tabular.Cell{Column: "time", Value: s.Time},
		tabular.Cell{Column: "time_seconds", Value: s.TimeSeconds},
		tabular.Cell{Column: "added_time", Value: jv.Int(s.AddedTime)},
	)
}
