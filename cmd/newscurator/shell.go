package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/news"
	"github.com/TobiSchelling/NewsCurator/internal/pipeline"
	"github.com/TobiSchelling/NewsCurator/internal/report"
)

// shell is the interactive numbered menu.
type shell struct {
	pipe *pipeline.Pipeline
	in   *bufio.Scanner
	out  io.Writer
}

func newShell(pipe *pipeline.Pipeline, in io.Reader, out io.Writer) *shell {
	return &shell{pipe: pipe, in: bufio.NewScanner(in), out: out}
}

// readLine returns the next trimmed input line. ok is false once input is exhausted.
func (s *shell) readLine() (line string, ok bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *shell) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

func rule(ch string, n int) string {
	return strings.Repeat(ch, n)
}

// Run loops over the main menu until the user exits or input ends.
func (s *shell) Run(ctx context.Context) error {
	s.banner()

	for {
		s.menu()
		line, ok := s.readLine()
		if !ok {
			break
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			choice = -1
		}
		if choice == 0 {
			break
		}

		if err := s.dispatch(ctx, choice); err != nil {
			log.WithError(err).Error("Menu action failed")
			s.printf("❌ Erro: %v\n", err)
		}

		s.println("\nPressione Enter para continuar...")
		if _, ok := s.readLine(); !ok {
			break
		}
	}

	s.println("👋 Obrigado por usar o Curador de Notícias Inteligente!")
	return nil
}

func (s *shell) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case 1:
		return s.singleTopic(ctx)
	case 2:
		return s.multipleTopics(ctx)
	case 3:
		return s.custom(ctx)
	case 4:
		return s.demo(ctx)
	case 5:
		s.stats()
	case 6:
		s.help()
	default:
		s.println("❌ Opção inválida! Tente novamente.")
	}
	return nil
}

func (s *shell) banner() {
	s.println("╔══════════════════════════════════════════════════════════╗")
	s.println("║              🤖 CURADOR DE NOTÍCIAS INTELIGENTE          ║")
	s.println("╚══════════════════════════════════════════════════════════╝")
	s.println()
	s.println("Bem-vindo ao seu assistente pessoal de curadoria de notícias!")
	s.println("Este agente busca, filtra e resume notícias sobre seus tópicos de interesse.")
	s.println()
}

func (s *shell) menu() {
	s.println("\n" + rule("=", 50))
	s.println("📰 MENU PRINCIPAL")
	s.println(rule("=", 50))
	s.println("1. 🔍 Buscar notícias sobre um tópico")
	s.println("2. 📊 Buscar notícias sobre múltiplos tópicos")
	s.println("3. ⚙️  Busca personalizada (com filtros)")
	s.println("4. 🎯 Demonstração (tópicos pré-definidos)")
	s.println("5. 📈 Estatísticas do agente")
	s.println("6. ❓ Ajuda")
	s.println("0. 🚪 Sair")
	s.println(rule("=", 50))
	s.printf("Escolha uma opção: ")
}

func (s *shell) singleTopic(ctx context.Context) error {
	s.println("\n🔍 BUSCA POR TÓPICO ÚNICO")
	s.println(rule("-", 30))
	s.printf("Digite o tópico que deseja pesquisar: ")

	topic, _ := s.readLine()
	if topic == "" {
		s.println("❌ Tópico não pode estar vazio!")
		return nil
	}

	s.println("\n🔄 Buscando notícias sobre: " + topic)
	s.println("⏳ Aguarde, isso pode levar alguns segundos...")

	rep, err := s.pipe.Curate(ctx, topic)
	if err != nil {
		return err
	}
	return s.display(rep)
}

func (s *shell) multipleTopics(ctx context.Context) error {
	s.println("\n📊 BUSCA POR MÚLTIPLOS TÓPICOS")
	s.println(rule("-", 35))
	s.println("Digite os tópicos separados por vírgula:")
	s.printf("Exemplo: tecnologia, inteligência artificial, startups\n> ")

	input, _ := s.readLine()
	if input == "" {
		s.println("❌ Pelo menos um tópico deve ser informado!")
		return nil
	}
	topics := pipeline.ParseTopics(input)
	if len(topics) == 0 {
		s.println("❌ Nenhum tópico válido foi informado!")
		return nil
	}

	s.println("\n🔄 Buscando notícias sobre: " + joinTopics(topics))
	s.println("⏳ Aguarde, isso pode levar alguns segundos...")

	rep, err := s.pipe.CurateTopics(ctx, topics)
	if err != nil {
		return err
	}
	return s.display(rep)
}

func (s *shell) custom(ctx context.Context) error {
	s.println("\n⚙️ BUSCA PERSONALIZADA")
	s.println(rule("-", 25))

	s.printf("Digite os tópicos (separados por vírgula): ")
	input, _ := s.readLine()
	topics := pipeline.ParseTopics(input)
	if len(topics) == 0 {
		s.println("❌ Pelo menos um tópico deve ser informado!")
		return nil
	}

	s.printf("Número máximo de artigos (padrão: %d): ", pipeline.DefaultMaxArticles)
	maxArticles := pipeline.DefaultMaxArticles
	if v, _ := s.readLine(); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.printf("⚠️ Valor inválido, usando padrão: %d\n", pipeline.DefaultMaxArticles)
		} else {
			maxArticles = pipeline.NormalizeMaxArticles(n)
		}
	}

	s.printf("Score mínimo de relevância (0.0 a 1.0, padrão: 0.0): ")
	minScore := 0.0
	if v, _ := s.readLine(); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.println("⚠️ Valor inválido, usando padrão: 0.0")
		} else {
			minScore = pipeline.NormalizeMinScore(f)
		}
	}

	s.println("\n🔄 Executando busca personalizada...")
	s.println("⏳ Aguarde, isso pode levar alguns segundos...")

	rep, err := s.pipe.CurateBounded(ctx, topics, maxArticles, minScore)
	if err != nil {
		return err
	}
	return s.display(rep)
}

func (s *shell) demo(ctx context.Context) error {
	s.println("\n🎯 DEMONSTRAÇÃO")
	s.println(rule("-", 20))
	s.println("Executando busca de demonstração com tópicos pré-definidos:")
	s.println("• Inteligência Artificial")
	s.println("• Tecnologia")
	s.println("• Inovação")

	s.println("\n🔄 Executando demonstração...")
	s.println("⏳ Aguarde, isso pode levar alguns segundos...")

	rep, err := s.pipe.CurateTopics(ctx, demoTopics)
	if err != nil {
		return err
	}
	return s.display(rep)
}

func (s *shell) stats() {
	s.println("\n📈 ESTATÍSTICAS DO AGENTE")
	s.println(rule("-", 30))
	s.println(s.pipe.StatsSummary())
}

func (s *shell) help() {
	s.println("\n❓ AJUDA")
	s.println(rule("-", 10))
	s.println("O Curador de Notícias Inteligente é um agente que:")
	s.println()
	s.println("🔍 BUSCA notícias sobre tópicos de seu interesse")
	s.println("🏷️ CATEGORIZA automaticamente as notícias encontradas")
	s.println("📝 GERA RESUMOS inteligentes de cada artigo")
	s.println("📊 CRIA RELATÓRIOS estruturados com estatísticas")
	s.println("⭐ AVALIA a relevância de cada notícia")
	s.println()
	s.println("💡 DICAS:")
	s.println("• Use termos específicos para melhores resultados")
	s.println("• Combine múltiplos tópicos para análises abrangentes")
	s.println("• Ajuste filtros na busca personalizada conforme necessário")
	s.println("• Experimente a demonstração para ver o agente em ação")
}

// display prints the quick summary and then the view the user picks.
func (s *shell) display(rep *news.Report) error {
	s.println("\n✅ Busca concluída com sucesso!")
	s.println()
	s.println(report.QuickSummary(rep))
	s.println()

	s.println("Como deseja visualizar o relatório?")
	s.println("1. 📄 Relatório completo (texto)")
	s.println("2. 📋 Resumo executivo")
	s.println("3. 💾 Salvar como JSON")
	s.printf("Escolha (1-3): ")

	choice, _ := s.readLine()
	s.println()

	switch choice {
	case "1":
		s.println(report.Text(rep))
	case "2":
		s.println("📋 RESUMO EXECUTIVO")
		s.println(rule("-", 20))
		s.println(rep.Summary)
	case "3":
		out, err := report.JSON(rep)
		if err != nil {
			return err
		}
		s.println("💾 RELATÓRIO EM JSON:")
		s.println(rule("-", 25))
		s.println(out)
	default:
		s.println("📋 RESUMO EXECUTIVO (padrão)")
		s.println(rule("-", 30))
		s.println(rep.Summary)
	}
	return nil
}
