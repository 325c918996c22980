// Manual smoke test: registers a user over REST, opens the room
// websocket, joins a room and prints everything the server pushes.
//
// Usage: go run ./scripts/ws_smoke -addr localhost:8080 -name alice -room lobby
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/avelichko/gameroom-server/internal/proto"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	name := flag.String("name", "smoke", "user name to register")
	room := flag.String("room", "lobby", "room to join")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	userID, err := registerUser(ctx, *addr, *name)
	if err != nil {
		log.Fatalf("register user: %v", err)
	}
	fmt.Printf("registered %q as user %d\n", *name, userID)

	conn, _, err := websocket.Dial(ctx, "ws://"+*addr+"/ws", nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	join, err := json.Marshal(proto.JoinData{Room: *room, UserID: userID})
	if err != nil {
		log.Fatalf("marshal join: %v", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeJoin, Data: join}); err != nil {
		log.Fatalf("write join: %v", err)
	}

	for {
		var frame map[string]any
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			log.Printf("read: %v", err)
			return
		}
		out, _ := json.Marshal(frame)
		fmt.Printf("<- %s\n", out)
	}
}

func registerUser(ctx context.Context, addr, name string) (int64, error) {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+addr+"/api/users", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, err
	}

	if resp.StatusCode == http.StatusConflict {
		// Already registered on a previous run; look the user up.
		return lookupUser(ctx, client, addr, name)
	}
	if resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return created.ID, nil
}

func lookupUser(ctx context.Context, client *http.Client, addr, name string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/api/users", nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var users []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return 0, err
	}
	for _, u := range users {
		if u.Name == name {
			return u.ID, nil
		}
	}
	return 0, fmt.Errorf("user %q not found", name)
}
