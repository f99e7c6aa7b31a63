package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Simulation client for the advisory chat flow: upserts a profile,
// opens a topic and streams one turn over SSE, printing reasoning and
// answer fragments as they arrive.

const baseURL = "http://localhost:3000/api"

type createTopicResponse struct {
	Data struct {
		Id string `json:"id"`
	} `json:"data"`
}

type outputEvent struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

func main() {
	token := os.Getenv("SIM_TOKEN")
	if token == "" {
		color.Red("SIM_TOKEN is not set (JWT for a test user)")
		os.Exit(1)
	}

	utterance := "我想学计算机，最好在北京"
	if len(os.Args) > 1 {
		utterance = strings.Join(os.Args[1:], " ")
	}

	color.Cyan("=== Advisory Chat Simulation ===")

	// 1. Upsert Profile
	color.Yellow("\n[1] Upserting profile")
	profile := map[string]interface{}{
		"province":       "北京",
		"score":          650,
		"exam_year":      2025,
		"subject_choice": []string{"物理", "化学", "生物"},
	}
	if _, err := sendJSON("PUT", "/profile/v1", token, profile); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Profile OK")

	// 2. Create Topic
	color.Yellow("\n[2] Creating topic")
	respBody, err := sendJSON("POST", "/topic/v1", token, map[string]interface{}{})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	var topicResp createTopicResponse
	if err := json.Unmarshal(respBody, &topicResp); err != nil {
		color.Red("Bad response: %v", err)
		os.Exit(1)
	}
	color.Green("Topic: %s", topicResp.Data.Id)

	// 3. Stream a turn
	color.Yellow("\n[3] Streaming turn: %s", utterance)
	if err := streamTurn(token, topicResp.Data.Id, utterance); err != nil {
		color.Red("Stream failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("\n=== Done ===")
}

func sendJSON(method, path, token string, body interface{}) ([]byte, error) {
	jsonBody, _ := json.Marshal(body)
	req, err := http.NewRequest(method, baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %s: %s", resp.Status, buf.String())
	}
	return buf.Bytes(), nil
}

func streamTurn(token, topicId, content string) error {
	payload := map[string]interface{}{
		"topic_id": topicId,
		"content":  content,
	}
	jsonBody, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", baseURL+"/chat/v1/stream", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var event outputEvent
		if err := json.Unmarshal([]byte(line[len("data: "):]), &event); err != nil {
			continue
		}

		switch event.Type {
		case "reasoning":
			color.HiBlack("%s", event.Content)
		case "answer":
			fmt.Print(event.Content)
		case "error":
			color.Red("\n[error] %s", event.Content)
		}
	}
	fmt.Println()
	return scanner.Err()
}
