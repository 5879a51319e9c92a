// Package faceapi calls the face detection and emotion classification
// service. Detection and classification are opaque: one request per frame,
// one raw label-to-score mapping per detected face.
package faceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiTimeout = 15
)

func Analyze(apiEndpoint string, apiKey string, frame []byte) (Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout*time.Second)
	defer cancel()

	req, err := http.NewRequest(http.MethodPost, apiEndpoint, bytes.NewReader(frame))
	if err != nil {
		return Result{}, err
	}
	req.Header.Add("Content-Type", "image/jpeg")
	req.Header.Add("api-key", apiKey)

	req = req.WithContext(ctx)
	client := http.Client{}

	resp, err := client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	if resp.StatusCode == http.StatusInternalServerError {
		return Result{}, errors.New(fmt.Sprintf("internal server error 500: %s", string(respBytes)))
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, errors.New(string(respBytes))
	}

	var r Result
	if err := json.Unmarshal(respBytes, &r); err != nil {
		return Result{}, err
	}

	return r, nil
}
