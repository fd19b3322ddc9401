// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nadi-gis/nadiproc/internal/algorithmregistry"
)

// Cmd lists the registered algorithms and their declared parameters.
var Cmd = &cli.Command{
	Name:        "show",
	Description: "Show the available algorithms and their parameters.",
	Usage:       "nadiproc show",
	Action:      actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	registry, err := algorithmregistry.FromContext(ctx)
	if err != nil {
		return err
	}

	for _, alg := range registry.All() {
		fmt.Fprintf(cmd.Writer, "%s (%s) [%s]\n", alg.Name(), alg.DisplayName(), alg.GroupID()) //nolint:errcheck

		for _, p := range alg.Parameters() {
			optional := ""
			if p.Optional {
				optional = ", optional"
			}

			fmt.Fprintf(cmd.Writer, "  %-14s %s (%s%s)\n", //nolint:errcheck
				p.Name, p.Description, p.Kind, optional)
		}
	}

	return nil
}
