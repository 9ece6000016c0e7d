package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/delivera/api-delivery/internal/aditivo"
	"github.com/delivera/api-delivery/internal/auditoria"
	"github.com/delivera/api-delivery/internal/auth"
	"github.com/delivera/api-delivery/internal/certificado"
	"github.com/delivera/api-delivery/internal/config"
	"github.com/delivera/api-delivery/internal/entregavel"
	"github.com/delivera/api-delivery/internal/marco"
	"github.com/delivera/api-delivery/internal/models"
	"github.com/delivera/api-delivery/internal/permissao"
	"github.com/delivera/api-delivery/internal/projeto"
	"github.com/delivera/api-delivery/internal/usuario"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Erro ao carregar configuração:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Erro ao criar logger:", err)
	}
	defer logger.Sync()

	auth.SetSecret(cfg.JWT.Secret)

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port, cfg.DB.SSLMode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := db.AutoMigrate(
		&usuario.Usuario{},
		&projeto.Projeto{},
		&models.Membro{},
		&models.Marco{},
		&models.Entregavel{},
		&models.Certificado{},
		&models.Aditivo{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Sinks de auditoria: log sempre; webhook e AMQP conforme configuração
	sinks := []auditoria.Sink{&auditoria.LogSink{Logger: logger}}
	if cfg.Auditoria.WebhookURL != "" {
		sinks = append(sinks, auditoria.NewWebhookSink(cfg.Auditoria.WebhookURL))
	}
	if cfg.Auditoria.AMQPURL != "" {
		amqpSink, err := auditoria.NewAMQPSink(cfg.Auditoria.AMQPURL)
		if err != nil {
			logger.Warn("auditoria AMQP indisponível", zap.Error(err))
		} else {
			defer amqpSink.Close()
			sinks = append(sinks, amqpSink)
		}
	}
	registrador := auditoria.NewRegistrador(logger, sinks...)

	resolver := permissao.NewResolver(db)

	// Handlers
	usuarioHandler := usuario.NewHandler(db)
	projetoHandler := projeto.NewHandler(db, resolver)
	marcoHandler := marco.NewHandler(db, resolver, registrador)
	entregavelHandler := entregavel.NewHandler(db, resolver, registrador)
	certificadoHandler := certificado.NewHandler(db, resolver, registrador)
	aditivoHandler := aditivo.NewHandler(db, resolver, registrador, cfg.Aditivos.DiasUteis)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Usuários (admin)
	api.Handle("/usuarios", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.Criar))).Methods("POST")

	// Projetos
	api.Handle("/projetos", auth.RequireAdmin(http.HandlerFunc(projetoHandler.Criar))).Methods("POST")
	api.HandleFunc("/projetos", projetoHandler.ListarTodos).Methods("GET")
	api.HandleFunc("/projetos/{id}", projetoHandler.BuscarPorID).Methods("GET")
	api.Handle("/projetos/{id}", auth.RequireAdmin(http.HandlerFunc(projetoHandler.Deletar))).Methods("DELETE")
	api.HandleFunc("/projetos/{id}/financeiro", projetoHandler.ResumoFinanceiro).Methods("GET")
	api.Handle("/projetos/{id}/membros", auth.RequireAdmin(http.HandlerFunc(projetoHandler.AdicionarMembro))).Methods("POST")
	api.HandleFunc("/projetos/{id}/membros", projetoHandler.ListarMembros).Methods("GET")
	api.Handle("/projetos/{id}/membros/{mid}", auth.RequireAdmin(http.HandlerFunc(projetoHandler.RemoverMembro))).Methods("DELETE")

	// Marcos
	api.HandleFunc("/projetos/{id}/marcos", marcoHandler.CriarParaProjeto).Methods("POST")
	api.HandleFunc("/projetos/{id}/marcos", marcoHandler.ListarPorProjeto).Methods("GET")
	api.HandleFunc("/marcos/{id}", marcoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/marcos/{id}", marcoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/marcos/{id}", marcoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/marcos/{id}/baseline/assinar", marcoHandler.AssinarBaseline).Methods("POST")
	api.Handle("/marcos/{id}/baseline/reset", auth.RequireAdmin(http.HandlerFunc(marcoHandler.ResetarBaseline))).Methods("POST")

	// Entregáveis
	api.HandleFunc("/marcos/{id}/entregaveis", entregavelHandler.CriarParaMarco).Methods("POST")
	api.HandleFunc("/marcos/{id}/entregaveis", entregavelHandler.ListarPorMarco).Methods("GET")
	api.HandleFunc("/entregaveis/{id}", entregavelHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/entregaveis/{id}", entregavelHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/entregaveis/{id}", entregavelHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/entregaveis/{id}/progresso", entregavelHandler.AplicarProgresso).Methods("PATCH")
	api.HandleFunc("/entregaveis/{id}/submeter-revisao", entregavelHandler.SubmeterRevisao).Methods("POST")
	api.HandleFunc("/entregaveis/{id}/aceitar-revisao", entregavelHandler.AceitarRevisao).Methods("POST")
	api.HandleFunc("/entregaveis/{id}/retornar", entregavelHandler.RetornarParaAjustes).Methods("POST")
	api.HandleFunc("/entregaveis/{id}/assinar-entrega", entregavelHandler.AssinarEntrega).Methods("POST")

	// Certificados de aceite
	api.HandleFunc("/marcos/{id}/certificado", certificadoHandler.GerarParaMarco).Methods("POST")
	api.HandleFunc("/marcos/{id}/certificado", certificadoHandler.BuscarPorMarco).Methods("GET")
	api.HandleFunc("/certificados/{id}/assinar", certificadoHandler.Assinar).Methods("POST")

	// Aditivos (controle de mudanças)
	api.HandleFunc("/projetos/{id}/aditivos", aditivoHandler.CriarParaProjeto).Methods("POST")
	api.HandleFunc("/projetos/{id}/aditivos", aditivoHandler.ListarPorProjeto).Methods("GET")
	api.HandleFunc("/aditivos/{id}", aditivoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/aditivos/{id}", aditivoHandler.Editar).Methods("PUT")
	api.HandleFunc("/aditivos/{id}", aditivoHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/aditivos/{id}/submeter", aditivoHandler.Submeter).Methods("POST")
	api.HandleFunc("/aditivos/{id}/assinar", aditivoHandler.Assinar).Methods("POST")
	api.HandleFunc("/aditivos/{id}/rejeitar", aditivoHandler.Rejeitar).Methods("POST")
	api.HandleFunc("/aditivos/{id}/aplicar", aditivoHandler.Aplicar).Methods("POST")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	// Inicia servidor
	fmt.Println("Servidor rodando em http://localhost:" + cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, handler))
}
