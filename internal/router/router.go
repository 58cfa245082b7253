package router

import (
	"context"
	"time"

	"github.com/janamirelly/varejosync-poc/internal/config"
	"github.com/janamirelly/varejosync-poc/internal/handler"
	"github.com/janamirelly/varejosync-poc/internal/middleware"
	"github.com/janamirelly/varejosync-poc/internal/model"
	"github.com/janamirelly/varejosync-poc/internal/repository"
	"github.com/janamirelly/varejosync-poc/internal/service"
	"github.com/janamirelly/varejosync-poc/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── Repositories ─────────────────────────────────────────────────────────
	txr := repository.NewTxRunner(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	variacaoRepo := repository.NewVariacaoRepository(db)
	estoqueRepo := repository.NewEstoqueRepository(db)
	movimentacaoRepo := repository.NewMovimentacaoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	fiscalRepo := repository.NewDocumentoFiscalRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	policy := service.NewDescontoPolicy(cfg.DescontoMaxVendedora)
	produtoSvc := service.NewProdutoService(produtoRepo, variacaoRepo)
	estoqueSvc := service.NewEstoqueService(txr, estoqueRepo, movimentacaoRepo, variacaoRepo)
	vendaSvc := service.NewVendaService(txr, vendaRepo, variacaoRepo, estoqueRepo,
		movimentacaoRepo, fiscalRepo, policy, cfg.PrazoDevolucaoDias)
	fiscalSvc := service.NewFiscalService(txr, vendaRepo, fiscalRepo)

	// Worker dispatcher — injected into the audit middleware
	dispatcher := worker.NewDispatcher(rdb)

	// Ator de sistema para rotas sem principal autenticado.
	sistema, err := authSvc.AtorDoSistema(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("system user not found; run cmd/seeduser")
		sistema = service.Ator{Nome: "sistema", Perfil: model.PerfilGerente}
	}

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	fiscalH := handler.NewFiscalHandler(fiscalSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW, middleware.ResolverAtor(sistema), middleware.Auditoria(dispatcher))
	{
		v1.GET("/auth/me", authH.Me)
		usuarios := v1.Group("/auth/usuarios", middleware.RequireGerente())
		{
			usuarios.POST("", authH.CriarUsuario)
			usuarios.GET("", authH.ListarUsuarios)
		}

		// Vendas — vendedoras e gerente
		vendasPerfis := middleware.RequirePerfil(model.PerfilVendedora, model.PerfilGerente)
		v1.POST("/vendas", vendasPerfis, vendasH.RegistrarVenda)
		v1.GET("/vendas", vendasH.ListarVendas)
		v1.GET("/vendas/:id_venda", vendasH.ObterVenda)
		v1.GET("/vendas/:id_venda/movimentacoes", vendasH.ListarMovimentacoesVenda)
		// O bloqueio fiscal do cancelamento roda na borda, antes do handler.
		v1.POST("/vendas/:id_venda/cancelar", vendasPerfis,
			middleware.BloqueioFiscal(vendaSvc, "id_venda"), vendasH.CancelarVenda)
		v1.POST("/vendas/:id_venda/devolver", vendasPerfis, vendasH.DevolverVenda)
		v1.PATCH("/vendas/:id_venda/itens/:id_item/desconto", vendasPerfis, vendasH.AplicarDescontoItem)

		// Estoque — estoquistas e gerente escrevem, todos leem
		estoquePerfis := middleware.RequirePerfil(model.PerfilEstoquista, model.PerfilGerente)
		v1.GET("/estoque", estoqueH.ListarDetalhado)
		v1.GET("/estoque/:id_variacao", estoqueH.Consultar)
		v1.PUT("/estoque/:id_variacao/minimo", estoquePerfis, estoqueH.AtualizarMinimo)
		v1.POST("/movimentacoes", estoquePerfis, estoqueH.RegistrarMovimentacao)
		v1.GET("/movimentacoes", estoqueH.ListarMovimentacoes)

		// Fiscal
		v1.POST("/fiscal/emitir/:id_venda", vendasPerfis, fiscalH.Emitir)
		v1.POST("/fiscal/cancelar/:id_venda", middleware.RequireGerente(), fiscalH.Cancelar)
		v1.GET("/fiscal/:id_venda", fiscalH.ObterPorVenda)

		// Catálogo — gerente escreve, todos leem
		v1.GET("/produtos", produtosH.Listar)
		v1.GET("/produtos/:id_produto", produtosH.Obter)
		v1.GET("/produtos/:id_produto/variacoes", produtosH.ListarVariacoes)
		produtos := v1.Group("/produtos", middleware.RequireGerente())
		{
			produtos.POST("", produtosH.Criar)
			produtos.POST("/:id_produto/variacoes", produtosH.CriarVariacao)
			produtos.POST("/:id_produto/variacoes/lote", produtosH.CriarVariacoesLote)
		}
		v1.DELETE("/variacoes/:id_variacao", middleware.RequireGerente(), produtosH.DesativarVariacao)
		v1.POST("/variacoes/:id_variacao/reativar", middleware.RequireGerente(), produtosH.ReativarVariacao)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
