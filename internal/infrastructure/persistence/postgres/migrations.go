package postgres

// Migration SQL for the curriculum and rule tables. Curricula change once per
// year at most, so the schema favors read simplicity over write throughput.

const migration001Up = `
CREATE TABLE IF NOT EXISTS curriculos (
	id                TEXT PRIMARY KEY,
	curso_id          TEXT NOT NULL,
	nome              TEXT NOT NULL,
	duracao_semestres INTEGER NOT NULL,
	created_at        TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_curriculos_curso ON curriculos (curso_id);

CREATE TABLE IF NOT EXISTS curriculo_disciplinas (
	curriculo_id      TEXT NOT NULL REFERENCES curriculos (id) ON DELETE CASCADE,
	posicao           INTEGER NOT NULL,
	codigo            TEXT NOT NULL,
	versao            INTEGER NOT NULL DEFAULT 1,
	nome              TEXT NOT NULL DEFAULT '',
	categoria         TEXT NOT NULL,
	semestre_ideal    INTEGER NOT NULL DEFAULT 0,
	creditos_aula     INTEGER NOT NULL DEFAULT 0,
	creditos_trabalho INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (curriculo_id, codigo, versao)
);

CREATE INDEX IF NOT EXISTS idx_curriculo_disciplinas_ordem
	ON curriculo_disciplinas (curriculo_id, posicao);
`

const migration001Down = `
DROP TABLE IF EXISTS curriculo_disciplinas;
DROP TABLE IF EXISTS curriculos;
`

const migration002Up = `
CREATE TABLE IF NOT EXISTS equivalencia_grupos (
	id           TEXT PRIMARY KEY,
	curriculo_id TEXT NOT NULL REFERENCES curriculos (id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS equivalencia_membros (
	grupo_id TEXT NOT NULL REFERENCES equivalencia_grupos (id) ON DELETE CASCADE,
	codigo   TEXT NOT NULL,
	PRIMARY KEY (grupo_id, codigo)
);

CREATE INDEX IF NOT EXISTS idx_equivalencia_grupos_curriculo
	ON equivalencia_grupos (curriculo_id);
`

const migration002Down = `
DROP TABLE IF EXISTS equivalencia_membros;
DROP TABLE IF EXISTS equivalencia_grupos;
`

const migration003Up = `
CREATE TABLE IF NOT EXISTS blocos (
	id                       TEXT PRIMARY KEY,
	curriculo_id             TEXT NOT NULL REFERENCES curriculos (id) ON DELETE CASCADE,
	posicao                  INTEGER NOT NULL,
	nome                     TEXT NOT NULL,
	minimo_disciplinas       INTEGER NOT NULL DEFAULT 0,
	minimo_creditos_aula     INTEGER NOT NULL DEFAULT 0,
	minimo_creditos_trabalho INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS bloco_codigos (
	bloco_id TEXT NOT NULL REFERENCES blocos (id) ON DELETE CASCADE,
	posicao  INTEGER NOT NULL,
	codigo   TEXT NOT NULL,
	PRIMARY KEY (bloco_id, codigo)
);

CREATE TABLE IF NOT EXISTS trilhas (
	id           TEXT PRIMARY KEY,
	curriculo_id TEXT NOT NULL REFERENCES curriculos (id) ON DELETE CASCADE,
	posicao      INTEGER NOT NULL,
	nome         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trilha_regras (
	id                       TEXT PRIMARY KEY,
	trilha_id                TEXT NOT NULL REFERENCES trilhas (id) ON DELETE CASCADE,
	posicao                  INTEGER NOT NULL,
	nome                     TEXT NOT NULL,
	nucleo                   BOOLEAN NOT NULL DEFAULT FALSE,
	minimo_disciplinas       INTEGER NOT NULL DEFAULT 0,
	minimo_creditos_aula     INTEGER NOT NULL DEFAULT 0,
	minimo_creditos_trabalho INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS regra_codigos (
	regra_id TEXT NOT NULL REFERENCES trilha_regras (id) ON DELETE CASCADE,
	posicao  INTEGER NOT NULL,
	codigo   TEXT NOT NULL,
	PRIMARY KEY (regra_id, codigo)
);

CREATE INDEX IF NOT EXISTS idx_blocos_curriculo ON blocos (curriculo_id, posicao);
CREATE INDEX IF NOT EXISTS idx_trilhas_curriculo ON trilhas (curriculo_id, posicao);
`

const migration003Down = `
DROP TABLE IF EXISTS regra_codigos;
DROP TABLE IF EXISTS trilha_regras;
DROP TABLE IF EXISTS trilhas;
DROP TABLE IF EXISTS bloco_codigos;
DROP TABLE IF EXISTS blocos;
`
