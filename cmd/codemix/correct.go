package main

import (
	"fmt"
	"strings"

	adomain "codemix/internal/services/analyze/domain"

	"github.com/spf13/cobra"
)

var correctCmd = &cobra.Command{
	Use:   "correct --lang CODE [flags] text",
	Short: "Record the correct language for a text",
	Long: `Correct stores a user correction. Texts with the same signature are then
served with the corrected language until the pattern is learned again.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCorrect,
}

func init() {
	f := correctCmd.Flags()
	f.StringP("lang", "l", "", "correct language, ISO 639-1 or 639-3")
	f.String("detected", "", "language the engine reported")
	f.String("annotator", "", "annotator id")
	f.String("comment", "", "free text note")
	_ = correctCmd.MarkFlagRequired("lang")
}

func runCorrect(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	detected, _ := cmd.Flags().GetString("detected")
	annotator, _ := cmd.Flags().GetString("annotator")
	comment, _ := cmd.Flags().GetString("comment")

	ctx := cmd.Context()
	eng, err := openEngine(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeEngine(ctx, eng)

	rc, err := eng.Service().SubmitCorrection(ctx, adomain.CorrectionInput{
		Text:            strings.Join(args, " "),
		Detected:        detected,
		CorrectLanguage: lang,
		AnnotatorID:     annotator,
		Comment:         comment,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s  %s\n", okColor.Sprint("stored"), langColor.Sprint(rc.Language), dimColor.Sprint(rc.Signature))
	if rc.Demoted {
		fmt.Fprintln(out, warnColor.Sprint("promoted pattern demoted"))
	}
	return nil
}
