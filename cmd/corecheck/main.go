package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/park285/Cheese-chesscore/internal/coreclient"
	"github.com/park285/Cheese-chesscore/pkg/chessdto"
)

func main() {
	baseURL := os.Getenv("CHESSCORE_URL")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}

	client := coreclient.NewClient(baseURL, coreclient.WithTimeout(8*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	h, err := client.Health(ctx)
	if err != nil {
		log.Fatalf("/healthz error: %v", err)
	}
	log.Printf("/healthz ok: status=%s games=%v", h.Status, h.Games)

	moves, err := client.Moves(ctx, chessdto.PositionRequest{})
	if err != nil {
		log.Fatalf("/v1/moves error: %v", err)
	}
	log.Printf("/v1/moves ok: side=%s count=%d", moves.Side, moves.Count)

	an, err := client.Analyze(ctx, chessdto.PositionRequest{FEN: os.Getenv("CHESSCORE_FEN")})
	if err != nil {
		log.Fatalf("/v1/analysis error: %v", err)
	}
	log.Printf("/v1/analysis ok: fen=%q result=%s method=%s balance=%.2f", an.FEN, an.Outcome.Result, an.Outcome.Method, an.Material.Balance)

	if !h.Games {
		log.Println("games disabled; skipping session check")
		return
	}
	g, err := client.CreateGame(ctx, "")
	if err != nil {
		log.Fatalf("create game error: %v", err)
	}
	ply := 0
	pr, err := client.Play(ctx, g.ID, chessdto.PlayRequest{Move: "e4", ExpectedPly: &ply})
	if err != nil {
		log.Fatalf("play error: %v", err)
	}
	log.Printf("game ok: id=%s fen=%q", g.ID, pr.Game.FEN)
}
