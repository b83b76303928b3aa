package main

import (
	"fmt"

	"github.com/okian/scout/internal/domain/model"
	"github.com/spf13/cobra"
)

func newAddCmd(c *cli) *cobra.Command {
	var (
		o          model.Observation
		auto, card string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record one team's performance in one match",
		Example: `  scout add --match 12 --team 100 --auto high --high 4 --middle 1 --minibot 2
  scout add --match 12 --team 254 --penalties 1 --card yellow --comment "tipped in endgame"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var err error
			if o.Autonomous, err = model.ParseAutonomousTier(auto); err != nil {
				return err
			}
			if o.Card, err = model.ParseCardLevel(card); err != nil {
				return err
			}
			svc, err := c.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			id, err := svc.Record(ctx, o)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.out, "recorded observation %d (match %d, team %d)\n", id, o.MatchNumber, o.TeamNumber)
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.MatchNumber, "match", 0, "match number")
	f.IntVar(&o.TeamNumber, "team", 0, "team number")
	f.StringVar(&auto, "auto", "none", "highest autonomous tier: none, low, middle, high")
	f.IntVar(&o.High, "high", 0, "game pieces scored on the high level")
	f.IntVar(&o.Middle, "middle", 0, "game pieces scored on the middle level")
	f.IntVar(&o.Low, "low", 0, "game pieces scored on the low level")
	f.IntVar(&o.MinibotPlace, "minibot", 0, "minibot finishing place, 0 when not attempted")
	f.IntVar(&o.Penalties, "penalties", 0, "penalties incurred")
	f.StringVar(&card, "card", "none", "card issued: none, yellow, red")
	f.StringVar(&o.Comment, "comment", "", "free-text note")
	_ = cmd.MarkFlagRequired("match")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}
