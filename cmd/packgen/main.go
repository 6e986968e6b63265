// packgen generates boosters and decks offline, writing Tabletop Simulator
// saved objects to stdout or a file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/assets"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/auth"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/booster"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/decklist"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/scryfall"
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/tts"
)

var (
	outPath  string
	count    int
	noLands  bool
	noTokens bool
	rawJSON  bool
)

func main() {
	root := &cobra.Command{
		Use:           "packgen",
		Short:         "Generate simulated booster packs as Tabletop Simulator objects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&outPath, "out", "o", "", "write JSON to file instead of stdout")
	root.PersistentFlags().BoolVar(&rawJSON, "json", false, "emit the raw pack instead of a TTS object")

	boosterCmd := &cobra.Command{
		Use:   "booster <set>",
		Short: "Generate booster packs for a set",
		Args:  cobra.ExactArgs(1),
		RunE:  runBooster,
	}
	boosterCmd.Flags().IntVarP(&count, "count", "n", 1, "number of packs")
	boosterCmd.Flags().BoolVar(&noLands, "no-lands", false, "skip the basic land slot")
	boosterCmd.Flags().BoolVar(&noTokens, "no-tokens", false, "skip the token slot")

	boxCmd := &cobra.Command{
		Use:   "box <set>",
		Short: "Generate a full booster box",
		Args:  cobra.ExactArgs(1),
		RunE:  runBox,
	}

	deckCmd := &cobra.Command{
		Use:   "deck <listfile>",
		Short: "Convert a deck list file to a TTS deck",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeck,
	}

	hashCmd := &cobra.Command{
		Use:   "hash <secret>",
		Short: "Hash an admin secret for ADMIN_SECRET_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashSecret(args[0])
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		},
	}

	root.AddCommand(boosterCmd, boxCmd, deckCmd, hashCmd)
	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newGenerator() (*booster.Generator, *scryfall.Client) {
	client := scryfall.New(zap.NewNop(), nil)
	return &booster.Generator{Source: client}, client
}

func cliOptions() booster.Options {
	opts := booster.DefaultOptions()
	opts.IncludeBasicLands = !noLands
	opts.IncludeTokens = !noTokens
	return opts
}

func runBooster(cmd *cobra.Command, args []string) error {
	gen, _ := newGenerator()
	setCode := strings.ToLower(args[0])

	packs, err := gen.Packs(context.Background(), setCode, count, cliOptions())
	if err != nil {
		return err
	}
	summarize(packs)
	return emitPacks(strings.ToUpper(setCode)+" boosters", packs)
}

func runBox(cmd *cobra.Command, args []string) error {
	gen, _ := newGenerator()
	setCode := strings.ToLower(args[0])

	packs, err := gen.Box(context.Background(), setCode, cliOptions())
	if err != nil {
		return err
	}
	summarize(packs)
	return emitPacks(strings.ToUpper(setCode)+" booster box", packs)
}

func runDeck(cmd *cobra.Command, args []string) error {
	_, client := newGenerator()

	body, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	list, err := decklist.Parse(string(body))
	if err != nil {
		return err
	}
	deck, err := decklist.Build(context.Background(), client, list)
	if err != nil {
		return err
	}

	if rawJSON {
		return emit(deck.Sections)
	}
	ser := tts.New(assets.NewProber(zap.NewNop(), nil))
	var objects []tts.Object
	for _, section := range deck.Order {
		obj := ser.Deck(context.Background(), section, deck.Sections[section])
		objects = append(objects, obj.ObjectStates...)
	}
	return emit(tts.SavedObject{ObjectStates: objects})
}

func emitPacks(nickname string, packs []*models.Pack) error {
	if rawJSON {
		return emit(packs)
	}
	ser := tts.New(assets.NewProber(zap.NewNop(), nil))
	if len(packs) == 1 {
		return emit(ser.Pack(context.Background(), packs[0]))
	}
	return emit(ser.Packs(context.Background(), nickname, packs))
}

func emit(v any) error {
	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// summarize prints a colorized rarity tally to stderr so piping stdout stays
// clean.
func summarize(packs []*models.Pack) {
	tally := map[models.Rarity]int{}
	foils := 0
	for _, pack := range packs {
		for _, sel := range pack.Cards {
			tally[sel.Card.Rarity]++
			if sel.Foil {
				foils++
			}
		}
	}
	line := []string{
		color.WhiteString("%d common", tally[models.Common]),
		color.CyanString("%d uncommon", tally[models.Uncommon]),
		color.YellowString("%d rare", tally[models.Rare]),
		color.RedString("%d mythic", tally[models.Mythic]),
		color.MagentaString("%d foil", foils),
	}
	fmt.Fprintf(os.Stderr, "%d pack(s): %s\n", len(packs), strings.Join(line, ", "))
}
