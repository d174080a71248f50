package backend

import (
	"context"
	"encoding/base64"
	"net/http"
)

// DataURL encodes image bytes as a base64 data URL, the image format the
// face endpoints accept. The MIME type is sniffed from the content.
func DataURL(image []byte) string {
	return "data:" + http.DetectContentType(image) + ";base64," + base64.StdEncoding.EncodeToString(image)
}

type extractFaceRequest struct {
	Image string `json:"image"`
}

// FaceExtraction is the embedding computed by the backend for one image.
type FaceExtraction struct {
	Success      bool      `json:"success"`
	Embedding    []float64 `json:"embedding"`
	Confidence   float64   `json:"confidence"`
	FaceDetected bool      `json:"face_detected"`
}

// ExtractFace asks the backend for the face embedding of image, a data URL.
// ErrNoFace is returned when no usable face was found.
func (c *Client) ExtractFace(ctx context.Context, image string) (*FaceExtraction, error) {
	res, err := doPostJSON[FaceExtraction](ctx, c, "extract-face", extractFaceRequest{Image: image})
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNoFace
		}

		return nil, err
	}

	if !res.Success || !res.FaceDetected || len(res.Embedding) == 0 {
		return nil, ErrNoFace
	}

	return res, nil
}

type recognizeFaceRequest struct {
	FaceEmbedding []float64 `json:"faceEmbedding"`
}

// Match is the employee a face embedding was matched to. The backend
// reports the score as either confidence or similarity.
type Match struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Confidence float64 `json:"confidence,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
}

// Score returns whichever of confidence or similarity was reported.
func (m Match) Score() float64 {
	if m.Confidence != 0 {
		return m.Confidence
	}

	return m.Similarity
}

type recognizeFaceResponse struct {
	Success  bool   `json:"success"`
	Employee *Match `json:"employee"`
}

// RecognizeFace matches an embedding against registered employees.
// ErrNoMatch is returned when nobody matched.
func (c *Client) RecognizeFace(ctx context.Context, embedding []float64) (*Match, error) {
	res, err := doPostJSON[recognizeFaceResponse](ctx, c, "recognize-face", recognizeFaceRequest{FaceEmbedding: embedding})
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNoMatch
		}

		return nil, err
	}

	if !res.Success || res.Employee == nil {
		return nil, ErrNoMatch
	}

	return res.Employee, nil
}
