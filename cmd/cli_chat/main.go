package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gapgap-ai/internal/client"
	"gapgap-ai/internal/config"
	"gapgap-ai/internal/domain"
)

const greeting = "¡Hola! Soy GapGap AI. ¿En qué puedo ayudarte?"

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	statePath := cfg.StatePath
	if statePath == "" {
		statePath, err = client.DefaultStatePath()
		if err != nil {
			log.Fatal(err)
		}
	}

	svc := client.NewHTTPService(cfg.AuthURL, cfg.ChatURL)
	app := client.NewApp(svc, client.NewFileStateStore(statePath))

	app.Directory.OnAuthRequired(func() {
		fmt.Println("Necesitas iniciar sesión primero.")
	})

	if err := app.Start(); err != nil {
		logger.Warn("session restore failed", zap.Error(err))
	}

	if app.Session.User() == nil {
		if !authLoop(ctx, reader, app) {
			return
		}
	}

	for {
		user := app.Session.User()
		if user == nil {
			if !authLoop(ctx, reader, app) {
				return
			}
			continue
		}

		fmt.Printf("\n===== GapGap AI — %s (%s) =====\n", user.Name, user.SubscriptionPlan)
		chats := app.Directory.Chats()
		for i, c := range chats {
			fmt.Printf("[%d] %s (%s)\n", i+1, c.Title, c.UpdatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println("[N] Chat nuevo")
		fmt.Println("[R] Recargar lista")
		fmt.Println("[L] Cerrar sesión")
		fmt.Println("[S] Salir")
		fmt.Print("Selecciona una opción: ")

		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		switch {
		case strings.EqualFold(choice, "N"):
			if fail := app.Transcript.Activate(ctx, ""); fail != nil {
				fmt.Printf("Error: %s\n", fail.Message)
				continue
			}
			fmt.Printf("\nGapGap AI > %s\n", greeting)
			chatLoop(ctx, reader, app)
		case strings.EqualFold(choice, "R"):
			if fail := app.Directory.Refresh(ctx); fail != nil {
				fmt.Printf("Error cargando chats: %s\n", fail.Message)
			}
		case strings.EqualFold(choice, "L"):
			if err := app.Session.Clear(); err != nil {
				fmt.Printf("Error cerrando sesión: %v\n", err)
			}
		case strings.EqualFold(choice, "S"):
			return
		default:
			idx, err := strconv.Atoi(choice)
			if err != nil || idx < 1 || idx > len(chats) {
				fmt.Println("Selección inválida.")
				continue
			}
			if fail := app.Transcript.Activate(ctx, chats[idx-1].ID); fail != nil {
				fmt.Printf("Error cargando historial: %s\n", fail.Message)
				continue
			}
			printTranscript(app.Transcript.Messages())
			chatLoop(ctx, reader, app)
		}
	}
}

func authLoop(ctx context.Context, reader *bufio.Reader, app *client.App) bool {
	for {
		fmt.Println("\n--- Acceso a GapGap AI ---")
		fmt.Println("[1] Iniciar sesión")
		fmt.Println("[2] Registrarse")
		fmt.Println("[3] Salir")
		fmt.Print("Selecciona una opción: ")

		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		var mode client.AuthMode
		switch choice {
		case "1":
			mode = client.ModeLogin
		case "2":
			mode = client.ModeRegister
		case "3":
			return false
		default:
			fmt.Println("Opción inválida.")
			continue
		}

		creds := client.Credentials{}
		fmt.Print("Email: ")
		email, _ := reader.ReadString('\n')
		creds.Email = strings.TrimSpace(email)
		fmt.Print("Contraseña: ")
		password, _ := reader.ReadString('\n')
		creds.Password = strings.TrimSpace(password)
		if mode == client.ModeRegister {
			fmt.Print("Nombre: ")
			name, _ := reader.ReadString('\n')
			creds.Name = strings.TrimSpace(name)
		}

		if fail := app.Auth.Submit(ctx, mode, creds); fail != nil {
			fmt.Printf("No se pudo acceder (%s): %s\n", fail.Reason, fail.Message)
			continue
		}
		return true
	}
}

func chatLoop(ctx context.Context, reader *bufio.Reader, app *client.App) {
	fmt.Println("---- Modo Chat (escribe 'salir' para volver al menú) ----")
	for {
		fmt.Print("Tú > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			return
		}

		// Un chat nuevo se crea recién en el primer envío.
		if app.Transcript.ActiveChatID() == "" {
			chat, fail := app.Directory.Create(ctx)
			if fail != nil {
				fmt.Printf("Error creando chat: %s\n", fail.Message)
				continue
			}
			if fail := app.Transcript.Activate(ctx, chat.ID); fail != nil {
				fmt.Printf("Error activando chat: %s\n", fail.Message)
				continue
			}
		}

		fmt.Println("GapGap AI está escribiendo...")
		if fail := app.Dispatcher.Send(ctx, text); fail != nil {
			fmt.Printf("Error enviando (%s): %s\n", fail.Reason, fail.Message)
			continue
		}

		entries := app.Transcript.Messages()
		if len(entries) > 0 {
			last := entries[len(entries)-1]
			if last.Role == domain.RoleAssistant {
				fmt.Printf("GapGap AI > %s\n", last.Content)
			}
		}
	}
}

func printTranscript(entries []client.Entry) {
	for _, e := range entries {
		switch e.Role {
		case domain.RoleUser:
			fmt.Printf("Tú > %s\n", e.Content)
		default:
			fmt.Printf("GapGap AI > %s\n", e.Content)
		}
	}
}
