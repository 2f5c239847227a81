package cli

import (
	"fmt"

	"deblinger/internal/config"
	"deblinger/internal/decklist"
	"deblinger/internal/resolver"

	"github.com/spf13/cobra"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <name> <set> <number>",
		Short: "Show the first printing of a single card",
		Example: `  deblinger resolve Charizard SVI 125
  deblinger resolve "Professor's Research" SVI 189 --type trainer
  deblinger resolve Charizard SVI 125 --source neo4j --lineage`,
		Args: cobra.ExactArgs(3),
		RunE: runResolve,
	}

	cmd.Flags().StringP("type", "t", string(resolver.Pokemon), "Card type: pokemon, trainer or energy")
	cmd.Flags().Bool("lineage", false, "Also list every printing in the card's reprint group (neo4j source)")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	name, set, number := args[0], args[1], args[2]
	cfg := loadConfig(cmd)
	typeFlag, _ := cmd.Flags().GetString("type")
	lineage, _ := cmd.Flags().GetBool("lineage")

	cardType, err := resolver.ParseCardType(typeFlag)
	if err != nil {
		return err
	}
	if lineage && cfg.TableSource != config.SourceNeo4j {
		return fmt.Errorf("--lineage requires the %s source", config.SourceNeo4j)
	}

	ctx, cancel := setupContext()
	defer cancel()

	r, b, err := loadResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	if !r.Ready() {
		return decklist.ErrTableNotLoaded
	}

	res := r.Explain(name, set, number, cardType)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\t(%s)\n", res.Set, res.Number, res.Rule)

	if !lineage {
		return nil
	}

	g, ok, err := b.graph.Lineage(ctx, set+" "+number)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "No reprint group contains this printing")
		return nil
	}

	fmt.Fprintf(out, "\n%s\n  first printing: %s\n", g.Name, g.FirstPrinting.ID)
	for _, p := range g.Reprints {
		fmt.Fprintf(out, "  reprint:        %s\n", p.ID)
	}
	return nil
}
