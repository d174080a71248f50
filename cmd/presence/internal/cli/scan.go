package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/presence/internal/backend"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Record a punch from a face image",
	Long: `Send an image to the backend for face extraction, match the face against
registered employees and let the backend record a check-in or check-out.

Example:
  presence scan --image face.jpg`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("image", "", "Path to the face image (required)")
	scanCmd.Flags().Float64("min-score", 0, "Reject matches scoring below this value")
	scanCmd.Flags().Bool("dry-run", false, "Recognize only, do not record a punch")
	_ = scanCmd.MarkFlagRequired("image")
}

func runScan(cmd *cobra.Command, args []string) error {
	_, client, err := setup(cmd)
	if err != nil {
		return err
	}

	image, err := readImage(mustGetString(cmd, "image"))
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	face, err := client.ExtractFace(ctx, image)
	if err != nil {
		if errors.Is(err, backend.ErrNoFace) {
			return errors.New("no face detected in image")
		}

		return fmt.Errorf("failed to extract face: %w", err)
	}

	slog.Debug("face extracted", "confidence", face.Confidence, "dimensions", len(face.Embedding))

	match, err := client.RecognizeFace(ctx, face.Embedding)
	if err != nil {
		if errors.Is(err, backend.ErrNoMatch) {
			return errors.New("face not recognized")
		}

		return fmt.Errorf("failed to recognize face: %w", err)
	}

	if minScore := mustGetFloat64(cmd, "min-score"); match.Score() < minScore {
		return fmt.Errorf("match %s scored %.2f, below %.2f", match.EmployeeID, match.Score(), minScore)
	}

	fmt.Fprintf(out, "Recognized %s (%s, %s) score %.2f\n", match.Name, match.EmployeeID, match.Department, match.Score())

	if mustGetBool(cmd, "dry-run") {
		return nil
	}

	res, err := client.AutoAttendance(ctx, backend.AutoRequest{
		EmployeeID: match.EmployeeID,
		Confidence: match.Score(),
	})
	if err != nil {
		return fmt.Errorf("failed to record attendance: %w", err)
	}

	name := res.EmployeeName()
	if name == "" {
		name = match.Name
	}

	fmt.Fprintf(out, "%s: %s", name, res.Action)

	if status := res.PunctualityStatus(); status != "" {
		fmt.Fprintf(out, " (%s)", status)
	}

	fmt.Fprintln(out)

	return nil
}
