package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestVision(t *testing.T, handler http.HandlerFunc) *VisionDetector {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	d, err := NewVisionDetector(context.Background(), VisionConfig{Endpoint: ts.URL + "/"},
		option.WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return d
}

func TestVisionDetectTextReturnsFirstAnnotation(t *testing.T) {
	d := newTestVision(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images:annotate", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Requests []struct {
				Image    struct{ Content string }
				Features []struct{ Type string }
			}
		}
		assert.NoError(t, json.Unmarshal(body, &req))
		if assert.Len(t, req.Requests, 1) {
			assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("label")), req.Requests[0].Image.Content)
			assert.Equal(t, "TEXT_DETECTION", req.Requests[0].Features[0].Type)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[
			{"description":"INFORMACION NUTRICIONAL\nPorcion 30g\nEnergia 140 kcal"},
			{"description":"INFORMACION"}
		]}]}`))
	})

	text, err := d.DetectText(context.Background(), []byte("label"))
	require.NoError(t, err)
	assert.Equal(t, "INFORMACION NUTRICIONAL\nPorcion 30g\nEnergia 140 kcal", text)
}

func TestVisionDetectTextFallbacks(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"full text":   {`{"responses":[{"fullTextAnnotation":{"text":"Grasa total 3g"}}]}`, "Grasa total 3g"},
		"no text":     {`{"responses":[{}]}`, ""},
		"no response": {`{"responses":[]}`, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d := newTestVision(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			})
			text, err := d.DetectText(context.Background(), []byte("img"))
			require.NoError(t, err)
			assert.Equal(t, tc.want, text)
		})
	}
}

func TestVisionDetectTextErrors(t *testing.T) {
	d := newTestVision(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`))
	})
	_, err := d.DetectText(context.Background(), []byte("img"))
	assert.EqualError(t, err, "text detection failed: Bad image data.")

	_, err = d.DetectText(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoImage)

	failing := newTestVision(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})
	_, err = failing.DetectText(context.Background(), []byte("img"))
	assert.ErrorContains(t, err, "text detection request failed")
}

type fakeRekognition struct {
	out   *rekognition.DetectTextOutput
	err   error
	input *rekognition.DetectTextInput
}

func (f *fakeRekognition) DetectText(ctx context.Context, params *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error) {
	f.input = params
	return f.out, f.err
}

func TestRekognitionDetectTextJoinsLines(t *testing.T) {
	fake := &fakeRekognition{out: &rekognition.DetectTextOutput{
		TextDetections: []types.TextDetection{
			{Type: types.TextTypesLine, DetectedText: aws.String("Nutrition Facts")},
			{Type: types.TextTypesWord, DetectedText: aws.String("Nutrition")},
			{Type: types.TextTypesLine, DetectedText: aws.String(" Serving size 30g ")},
			{Type: types.TextTypesLine, DetectedText: aws.String("")},
		},
	}}
	d := &RekognitionDetector{client: fake}

	text, err := d.DetectText(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "Nutrition Facts\nServing size 30g", text)
	assert.Equal(t, []byte("img"), fake.input.Image.Bytes)
}

func TestRekognitionDetectTextErrors(t *testing.T) {
	d := &RekognitionDetector{client: &fakeRekognition{err: errors.New("throttled")}}

	_, err := d.DetectText(context.Background(), []byte("img"))
	assert.ErrorContains(t, err, "throttled")

	_, err = d.DetectText(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoImage)

	empty := &RekognitionDetector{client: &fakeRekognition{out: &rekognition.DetectTextOutput{}}}
	text, err := empty.DetectText(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNewDetectorUnsupported(t *testing.T) {
	_, err := NewDetector(context.Background(), "tesseract", "")
	assert.EqualError(t, err, "unsupported ocr type: tesseract")
}

func TestNewRekognitionDetectorRequiresRegion(t *testing.T) {
	_, err := NewRekognitionDetector(context.Background(), RekognitionConfig{})
	assert.EqualError(t, err, "AWS_REGION not set")
}
