// Package evolucao contém o motor de cálculo da evolução acadêmica: a função
// pura que transforma (histórico, currículo, tabelas de exigência) no
// relatório estruturado de o que foi cumprido, o que falta e quais faixas
// especiais de formatura estão satisfeitas.
//
// O motor não tem estado entre invocações e não faz I/O; cada chamada recebe
// os insumos prontos e devolve um resultado novo e imutável.
package evolucao

import (
	"time"

	"github.com/google/uuid"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/curriculo"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLASSIFICAÇÃO
// ══════════════════════════════════════════════════════════════════════════════

// Classificacao é a categoria resolvida de uma conclusão: as três categorias
// da grade mais a extracurricular (sem vaga correspondente).
type Classificacao string

const (
	// ClassificacaoObrigatoria - conclusão conta como obrigatória.
	ClassificacaoObrigatoria Classificacao = "obrigatoria"
	// ClassificacaoEletiva - conclusão conta como eletiva.
	ClassificacaoEletiva Classificacao = "eletiva"
	// ClassificacaoLivre - conclusão conta como optativa livre.
	ClassificacaoLivre Classificacao = "livre"
	// ClassificacaoExtracurricular - conclusão sem vaga na grade atual.
	ClassificacaoExtracurricular Classificacao = "extracurricular"
)

// IsValid verifica que a classificação é uma das conhecidas.
func (c Classificacao) IsValid() bool {
	switch c {
	case ClassificacaoObrigatoria, ClassificacaoEletiva, ClassificacaoLivre, ClassificacaoExtracurricular:
		return true
	default:
		return false
	}
}

// DaCategoria converte uma categoria da grade na classificação equivalente.
func DaCategoria(cat curriculo.Categoria) Classificacao {
	switch cat {
	case curriculo.CategoriaObrigatoria:
		return ClassificacaoObrigatoria
	case curriculo.CategoriaEletiva:
		return ClassificacaoEletiva
	case curriculo.CategoriaLivre:
		return ClassificacaoLivre
	default:
		return ClassificacaoExtracurricular
	}
}

// DisciplinaClassificada é uma cursada sobrevivente à deduplicação, marcada
// com sua categoria resolvida e, quando aplicável, a vaga da grade que ela
// preenche.
type DisciplinaClassificada struct {
	// Cursada - a tentativa vencedora registrada no histórico.
	Cursada historico.Cursada `json:"cursada"`

	// Classificacao - categoria resolvida.
	Classificacao Classificacao `json:"classificacao"`

	// Vaga - chave da vaga da grade preenchida por esta conclusão
	// (nil para extracurriculares).
	Vaga *historico.Chave `json:"vaga,omitempty"`

	// ViaEquivalencia - true se a vaga foi preenchida por equivalência,
	// e não por casamento direto de (código, versão).
	ViaEquivalencia bool `json:"viaEquivalencia,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// CRÉDITOS
// ══════════════════════════════════════════════════════════════════════════════

// Creditos acumula créditos obtidos e exigidos de uma categoria.
type Creditos struct {
	// AulaObtidos - créditos-aula somados das conclusões da categoria.
	AulaObtidos int `json:"aulaObtidos"`

	// TrabalhoObtidos - créditos-trabalho somados das conclusões da categoria.
	TrabalhoObtidos int `json:"trabalhoObtidos"`

	// AulaExigidos - créditos-aula somados das vagas da categoria na grade.
	AulaExigidos int `json:"aulaExigidos"`

	// TrabalhoExigidos - créditos-trabalho somados das vagas da categoria.
	TrabalhoExigidos int `json:"trabalhoExigidos"`

	// Percentual - percentual de conclusão derivado dos quatro totais,
	// limitado a [0, 100]. Materializado pelo agregador para que o relatório
	// serializado carregue o percentual pronto para o renderizador de
	// documentos.
	Percentual float64 `json:"percentual"`
}

// percentualDerivado calcula o percentual de conclusão da categoria, limitado
// a [0, 100]. Quando nada é exigido, a categoria está vacuamente completa (100).
func (c Creditos) percentualDerivado() float64 {
	exigidos := c.AulaExigidos + c.TrabalhoExigidos
	if exigidos <= 0 {
		return 100
	}
	obtidos := c.AulaObtidos + c.TrabalhoObtidos
	pct := float64(obtidos) / float64(exigidos) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Soma acumula outro total de créditos neste. O percentual não é acumulável;
// o agregador o deriva depois do último Soma.
func (c Creditos) Soma(outro Creditos) Creditos {
	return Creditos{
		AulaObtidos:      c.AulaObtidos + outro.AulaObtidos,
		TrabalhoObtidos:  c.TrabalhoObtidos + outro.TrabalhoObtidos,
		AulaExigidos:     c.AulaExigidos + outro.AulaExigidos,
		TrabalhoExigidos: c.TrabalhoExigidos + outro.TrabalhoExigidos,
	}
}

// QuadroCreditos agrupa os totais de créditos por categoria e o total geral.
// O total geral cobre apenas as três categorias da grade; extracurriculares
// ficam fora do denominador.
type QuadroCreditos struct {
	Obrigatorias      Creditos `json:"obrigatorias"`
	Eletivas          Creditos `json:"eletivas"`
	Livres            Creditos `json:"livres"`
	Extracurriculares Creditos `json:"extracurriculares"`
	Total             Creditos `json:"total"`
}

// ══════════════════════════════════════════════════════════════════════════════
// AVALIAÇÕES DE EXIGÊNCIA
// ══════════════════════════════════════════════════════════════════════════════

// AvaliacaoExigencia é o resultado da primitiva de avaliação: a interseção
// das conclusões com a lista elegível e a flag de satisfação.
type AvaliacaoExigencia struct {
	// Cumpridas - códigos elegíveis concluídos, na ordem da lista elegível.
	Cumpridas []historico.CodigoDisciplina `json:"cumpridas"`

	// CreditosAula - créditos-aula somados da interseção.
	CreditosAula int `json:"creditosAula"`

	// CreditosTrabalho - créditos-trabalho somados da interseção.
	CreditosTrabalho int `json:"creditosTrabalho"`

	// Satisfeito - true se mínimos de contagem e de créditos foram atingidos.
	Satisfeito bool `json:"satisfeito"`
}

// AvaliacaoBloco é a avaliação de um Bloco, independente dos demais.
type AvaliacaoBloco struct {
	BlocoID   string             `json:"blocoId"`
	Nome      string             `json:"nome"`
	Avaliacao AvaliacaoExigencia `json:"avaliacao"`
}

// AvaliacaoRegra é a avaliação de uma regra de trilha.
type AvaliacaoRegra struct {
	RegraID   string             `json:"regraId"`
	Nome      string             `json:"nome"`
	Nucleo    bool               `json:"nucleo"`
	Avaliacao AvaliacaoExigencia `json:"avaliacao"`
}

// AvaliacaoTrilha é a avaliação de uma trilha completa.
type AvaliacaoTrilha struct {
	TrilhaID string           `json:"trilhaId"`
	Nome     string           `json:"nome"`
	Regras   []AvaliacaoRegra `json:"regras"`

	// NucleoCumprido - true se todas as regras marcadas como núcleo estão
	// satisfeitas (vacuamente true se a trilha não tem regra de núcleo).
	NucleoCumprido bool `json:"nucleoCumprido"`

	// Completa - true se todas as regras da trilha estão satisfeitas.
	Completa bool `json:"completa"`
}

// ══════════════════════════════════════════════════════════════════════════════
// RESULTADO FINAL
// ══════════════════════════════════════════════════════════════════════════════

// Evolucao é o relatório final do cálculo. Criado por invocação, nunca mutado
// depois de montado; é uma estrutura serializável pronta para o renderizador
// de documentos ou para a camada de API.
type Evolucao struct {
	// ID - identificador único deste relatório.
	ID uuid.UUID `json:"id"`

	// NUSP - identidade do aluno no registro.
	NUSP historico.NUSP `json:"nusp"`

	// CurriculoID - identidade do currículo usado no cálculo.
	CurriculoID string `json:"curriculoId"`

	// GeradaEm - instante de geração do relatório.
	GeradaEm time.Time `json:"geradaEm"`

	// Conclusões por categoria resolvida.
	Obrigatorias      []DisciplinaClassificada `json:"obrigatorias"`
	Eletivas          []DisciplinaClassificada `json:"eletivas"`
	Livres            []DisciplinaClassificada `json:"livres"`
	Extracurriculares []DisciplinaClassificada `json:"extracurriculares"`

	// Creditos - totais por categoria e geral.
	Creditos QuadroCreditos `json:"creditos"`

	// VagasPendentes - vagas obrigatórias e eletivas da grade ainda não
	// preenchidas, na ordem do documento curricular.
	VagasPendentes []curriculo.DisciplinaGrade `json:"vagasPendentes"`

	// Blocos - avaliações de cada bloco cadastrado.
	Blocos []AvaliacaoBloco `json:"blocos"`

	// Trilhas - avaliações de cada trilha cadastrada.
	Trilhas []AvaliacaoTrilha `json:"trilhas"`

	// SemestreEstagio - semestre a partir do qual o aluno pode iniciar
	// estágio obrigatório ou opcional.
	SemestreEstagio int `json:"semestreEstagio"`
}

// TotalClassificadas retorna o número de conclusões em todos os baldes.
func (e *Evolucao) TotalClassificadas() int {
	return len(e.Obrigatorias) + len(e.Eletivas) + len(e.Livres) + len(e.Extracurriculares)
}
