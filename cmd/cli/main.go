package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"inkwell-api/internal/config"
	"inkwell-api/internal/db"
	"inkwell-api/internal/domain"
	"inkwell-api/internal/email"
	"inkwell-api/internal/llm"
	"inkwell-api/internal/repository"
	"inkwell-api/internal/service"
)

// stdoutSender imprime el codigo en la terminal en lugar de enviarlo.
type stdoutSender struct{}

func (stdoutSender) SendVerificationCode(_ context.Context, toEmail, code string) error {
	fmt.Printf(">> codigo para %s: %s\n", toEmail, code)
	return nil
}

var _ email.Sender = stdoutSender{}

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	var (
		users repository.UserRepository
		docs  repository.DocRepository
	)
	if cfg.StoreDriver == config.StoreDriverMemory {
		users = repository.NewMemoryUserRepository()
		docs = repository.NewMemoryDocRepository()
	} else {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		users = repository.NewPgUserRepository(pool)
		docs = repository.NewPgDocRepository(pool)
	}

	tokens, err := service.NewTokenCodec(service.TokenConfig{Secret: cfg.Secret, TTL: cfg.TokenTTL()})
	if err != nil {
		log.Fatal(err)
	}
	codes := service.NewCodeGenerator(service.DefaultArgon2Params())
	issuer := service.NewOTPIssuer(logger, users, codes, stdoutSender{}, nil)
	verifier := service.NewOTPVerifier(logger, users, codes, tokens)
	authorizer := service.NewAuthorizer(tokens, users)
	assistant := service.NewWritingAssistant(llm.NewHTTPClient(cfg.GenerativeBaseURL, cfg.GenerativeAPIKey, cfg.GenerativeModel, logger))

	identity, err := loginFlow(ctx, reader, issuer, verifier, authorizer)
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	fmt.Printf("Sesion iniciada como %s (ID: %s)\n", identity.Email, identity.UserID)

	for {
		fmt.Println("===== Inkwell =====")
		fmt.Println("[L] Listar documentos")
		fmt.Println("[N] Nuevo documento")
		fmt.Println("[B] Buscar")
		fmt.Println("[R] Reescribir texto")
		fmt.Println("[Q] Salir")
		fmt.Print("Seleccion: ")
		choice := readLine(reader)

		var err error
		switch strings.ToUpper(choice) {
		case "L":
			err = printDocs(docs.List(ctx, identity.UserID))
		case "B":
			fmt.Print("Buscar: ")
			err = printDocs(docs.Search(ctx, identity.UserID, readLine(reader)))
		case "N":
			err = createDocFlow(ctx, reader, docs, identity.UserID)
		case "R":
			err = rewriteFlow(ctx, reader, assistant)
		case "Q":
			return
		default:
			fmt.Println("Seleccion invalida.")
		}
		if err != nil {
			log.Printf("error: %v", err)
		}
	}
}

func loginFlow(
	ctx context.Context,
	reader *bufio.Reader,
	issuer *service.OTPIssuer,
	verifier *service.OTPVerifier,
	authorizer *service.Authorizer,
) (service.Identity, error) {
	fmt.Print("Email: ")
	emailAddr := readLine(reader)
	if err := issuer.RequestCode(ctx, emailAddr); err != nil {
		return service.Identity{}, err
	}

	for attempt := 0; attempt < 3; attempt++ {
		fmt.Print("Codigo: ")
		token, err := verifier.Redeem(ctx, emailAddr, readLine(reader))
		if errors.Is(err, service.ErrCodeMismatch) || errors.Is(err, service.ErrInvalidInput) {
			fmt.Println("Codigo incorrecto.")
			continue
		}
		if err != nil {
			return service.Identity{}, err
		}
		fmt.Printf("Access token:\n%s\n", token)
		return authorizer.Authorize(ctx, "Bearer "+token)
	}
	return service.Identity{}, errors.New("too many attempts")
}

func createDocFlow(ctx context.Context, reader *bufio.Reader, docs repository.DocRepository, userID string) error {
	fmt.Print("Titulo: ")
	title := readLine(reader)
	fmt.Print("Texto: ")
	text := readLine(reader)

	now := time.Now().UTC()
	doc := domain.Doc{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		ContentText: text,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := docs.Create(ctx, doc); err != nil {
		return err
	}
	fmt.Printf("Documento creado (ID: %s)\n", doc.ID)
	return nil
}

func rewriteFlow(ctx context.Context, reader *bufio.Reader, assistant *service.WritingAssistant) error {
	fmt.Print("Texto seleccionado: ")
	selected := readLine(reader)
	fmt.Print("Instruccion: ")
	task := readLine(reader)

	result, err := assistant.Rewrite(ctx, selected, task)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n\n", result)
	return nil
}

func printDocs(docs []domain.DocSummary, err error) error {
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("No hay documentos.")
		return nil
	}
	for i, d := range docs {
		fmt.Printf("[%d] %s (ID: %s)\n", i+1, d.Title, d.ID)
	}
	return nil
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
